// Package testutil provides shared test infrastructure for webgen
// packages.
//
// TestEnvironment builds an isolated scratch site per test, either
// memory-backed (EnvMemoryOnly) or on a real temp directory
// (EnvIsolated); FileTree declares directory contents inline. Prefer
// EnvMemoryOnly unless the test needs real symlinks or a git binary.
// Fixtures live inline in the tests, never in external files.
package testutil
