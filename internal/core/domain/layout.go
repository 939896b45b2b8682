package domain

import (
	"path/filepath"
	"strings"
)

const (
	// StrataDirName is the name of the internal workspace directory.
	StrataDirName = ".strata"

	// BlobDirName is the name of the content addressable blob directory.
	BlobDirName = "blobs"

	// ManifestFileName is the name of the graph manifest file.
	ManifestFileName = "strata.yaml"

	// SettingsFileName is the base name of the optional settings file.
	SettingsFileName = "settings"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultBlobPath returns the default path for the content addressable blob store.
// It joins .strata and blobs.
func DefaultBlobPath() string {
	return filepath.Join(StrataDirName, BlobDirName)
}

// ClusterStrategy names how the units of a graph are grouped into domains.
type ClusterStrategy string

const (
	// ClusterSingle places every unit of a graph in one domain.
	ClusterSingle ClusterStrategy = "single"
	// ClusterPerUnit gives every unit its own domain.
	ClusterPerUnit ClusterStrategy = "per-unit"
	// ClusterAttributePrefix groups units by the value of a descriptor attribute.
	ClusterAttributePrefix = "attribute:"
)

// AttributeKey returns the attribute an "attribute:<key>" strategy groups by.
func (s ClusterStrategy) AttributeKey() (string, bool) {
	key, ok := strings.CutPrefix(string(s), ClusterAttributePrefix)
	return key, ok && key != ""
}

// Valid reports whether s names a known strategy. The empty strategy is valid.
func (s ClusterStrategy) Valid() bool {
	if s == "" || s == ClusterSingle || s == ClusterPerUnit {
		return true
	}
	_, ok := s.AttributeKey()
	return ok
}

// Layout is a loaded manifest: the graph plus how a pool should be built from it.
type Layout struct {
	Graph    *Graph
	Strategy ClusterStrategy
	Deny     []string
	// Parents holds the layouts of Graph.Parents(), in the same order.
	Parents []*Layout
	// Path is the manifest file the layout was read from.
	Path string
}

// Reason tells the transformer why an artifact is being transformed.
type Reason string

const (
	// ReasonResolve marks an on-demand resolution whose result is cached.
	ReasonResolve Reason = "resolve"
	// ReasonLookup marks a supplementary lookup whose result is not cached.
	ReasonLookup Reason = "lookup"
)
