// Package framework locates the Maizzle framework installed in a project and
// delegates build and serve to it. The Framework interface is the only thing
// the CLI sees; NodeFramework implements it by running a small Node.js shim
// that loads the module and calls its exported build or serve function.
package framework
