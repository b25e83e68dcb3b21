// Package scaffold writes the starter files of a new React project from
// embedded template sets. It backs the default "template" source of
// "reactforge", replacing the network round trip of "npm create vite".
package scaffold
