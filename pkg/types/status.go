package types

// DependencyState represents the outcome of processing one dependency
// during bootstrap.
type DependencyState string

const (
	// DependencyStateLinked indicates the clone and the symlink both succeeded
	DependencyStateLinked DependencyState = "linked"

	// DependencyStateCloned indicates the clone succeeded but the symlink failed
	DependencyStateCloned DependencyState = "cloned"

	// DependencyStateFailed indicates the clone itself failed
	DependencyStateFailed DependencyState = "failed"

	// DependencyStateSkipped indicates the dependency was never attempted
	// because an earlier one failed
	DependencyStateSkipped DependencyState = "skipped"
)
