package bootstrap

import (
	"context"
	"os/exec"
	"strings"

	"github.com/webgenlabs/webgen/pkg/errors"
)

// gitRunner invokes the external git client and returns its combined
// stdout/stderr. Swapped in tests.
var gitRunner = func(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	return cmd.CombinedOutput()
}

// gitLookup locates the git executable on PATH. Swapped in tests.
var gitLookup = exec.LookPath

// EnsureGit verifies that the external git client is available.
func EnsureGit() error {
	if _, err := gitLookup("git"); err != nil {
		return errors.Wrap(err, errors.ErrGitMissing,
			"git is required but was not found in PATH")
	}
	return nil
}

// clone runs `git clone <url> <dest>`. git's own diagnostics are
// preserved in the returned error so the user sees the real cause
// (bad URL, unreachable host, auth failure).
func clone(ctx context.Context, url, dest string) error {
	out, err := gitRunner(ctx, "clone", url, dest)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return errors.Wrapf(err, errors.ErrCloneFailed, "git clone %s: %s", url, msg)
		}
		return errors.Wrapf(err, errors.ErrCloneFailed, "git clone %s", url)
	}
	return nil
}
