// Package demo provides the built-in catalog of the demo server: the add,
// subtract, and multiply tools, the file and hello resources, and the
// review-code prompt.
package demo
