// Package filesystem provides the types.FS implementations webgen
// runs against: the real OS filesystem and an afero-backed memory
// filesystem for tests. Symlink, readlink, and lstat degrade
// gracefully on backends that do not support them.
package filesystem
