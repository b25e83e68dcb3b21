// Package pipeline runs an ordered list of scaffolding steps. Steps run one
// at a time and the first failure stops the run; nothing is rolled back.
// The project directory is carried explicitly in Env.WorkDir and changed
// only by ChangeDirectoryStep, so the process working directory is never
// touched.
package pipeline
