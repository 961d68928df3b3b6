// Package manifest reads and writes generation manifests.
//
// A manifest records every file a generation run produced, one line per
// file: the xxhash64 of the file content in hex, two spaces, and the
// path relative to the output root. Lines are sorted by path so two
// runs over identical output trees produce byte-identical manifests.
package manifest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/types"
)

// separator sits between the hash and the path on each line. Two spaces,
// so paths containing single spaces survive a round-trip.
const separator = "  "

// Entry is a single manifest line.
type Entry struct {
	// Hash is the xxhash64 of the file content, as 16 hex digits
	Hash string

	// Path is relative to the output root, always slash-separated
	Path string
}

// Manifest is an ordered collection of entries keyed by path.
type Manifest struct {
	entries map[string]string // path -> hash
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// Add records a file and its content hash. Adding a path twice keeps
// the latest hash.
func (m *Manifest) Add(path, hash string) {
	m.entries[filepath.ToSlash(path)] = hash
}

// AddContent hashes content and records it under path.
func (m *Manifest) AddContent(path string, content []byte) {
	m.Add(path, HashBytes(content))
}

// Lookup returns the recorded hash for path.
func (m *Manifest) Lookup(path string) (string, bool) {
	hash, ok := m.entries[filepath.ToSlash(path)]
	return hash, ok
}

// Len returns the number of recorded files.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Paths returns all recorded paths sorted.
func (m *Manifest) Paths() []string {
	paths := make([]string, 0, len(m.entries))
	for path := range m.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Entries returns all entries sorted by path.
func (m *Manifest) Entries() []Entry {
	entries := make([]Entry, 0, len(m.entries))
	for _, path := range m.Paths() {
		entries = append(entries, Entry{Hash: m.entries[path], Path: path})
	}
	return entries
}

// Serialize renders the manifest in its on-disk form.
func (m *Manifest) Serialize() []byte {
	var b strings.Builder
	for _, entry := range m.Entries() {
		b.WriteString(entry.Hash)
		b.WriteString(separator)
		b.WriteString(entry.Path)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Write stores the manifest at path atomically: the content goes to a
// temp file in the same directory which is then renamed over path.
func (m *Manifest) Write(fs types.FS, path string) error {
	tmp := path + ".tmp"
	if err := fs.WriteFile(tmp, m.Serialize(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write manifest %s", tmp)
	}
	if err := fs.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move manifest into place at %s", path)
	}
	return nil
}

// Read loads a manifest from path. Blank lines are tolerated; anything
// else that does not parse is an error.
func Read(fs types.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read manifest %s", path)
	}

	m := New()
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, separator, 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, errors.Newf(errors.ErrManifestParse,
				"malformed manifest line %d in %s: %q", i+1, path, line)
		}
		m.Add(parts[1], parts[0])
	}
	return m, nil
}

// HashBytes returns the xxhash64 digest of content as 16 hex digits.
func HashBytes(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// HashFile hashes the file at path through fs.
func HashFile(fs types.FS, path string) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s for hashing", path)
	}
	return HashBytes(data), nil
}
