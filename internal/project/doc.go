// Package project turns the options of a "reactforge" invocation into an
// ordered pipeline of steps: directory creation, template or Vite
// scaffolding, git and npm setup, and the TailwindCSS wiring that patches
// vite.config.js.
package project
