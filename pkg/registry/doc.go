// Package registry provides a small type-safe registry for named
// components. Processors register themselves through init() functions
// and are looked up by name at generation time.
package registry
