// Package types holds the shared vocabulary of webgen: the FS
// filesystem abstraction, the Dependency descriptor for external
// resources, and the result structures commands return. It depends on
// nothing inside the repo so every package can import it.
package types
