// Package config loads strata.yaml manifests into layouts.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/strata/internal/adapters/transform"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the manifest version the loader understands.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML manifests.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the manifest at path together with every parent manifest.
// A directory is searched upwards for strata.yaml. A parent shared by several
// manifests is loaded once and the resulting layouts share it.
func (l *Loader) Load(path string) (*domain.Layout, error) {
	manifestPath, err := findManifest(path)
	if err != nil {
		return nil, err
	}

	s := &session{loader: l, layouts: make(map[string]*domain.Layout)}
	return s.load(manifestPath, nil)
}

// session memoizes layouts by manifest path for one Load call.
type session struct {
	loader  *Loader
	layouts map[string]*domain.Layout
}

func (s *session) load(path string, stack []string) (*domain.Layout, error) {
	if layout, ok := s.layouts[path]; ok {
		return layout, nil
	}
	if i := slices.Index(stack, path); i >= 0 {
		cycle := strings.Join(append(slices.Clone(stack[i:]), path), " -> ")
		return nil, zerr.With(zerr.Wrap(domain.ErrCycleDetected, "manifest parents"), "cycle", cycle)
	}
	stack = append(stack, path)

	var m Manifest
	if err := readAndUnmarshalYAML(path, &m); err != nil {
		return nil, zerr.With(err, "manifest", path)
	}
	if m.Version != "" && m.Version != SupportedVersion {
		s.loader.Logger.Warn("unsupported manifest version", "manifest", path, "version", m.Version)
	}

	dir := filepath.Dir(path)

	parents := make([]*domain.Layout, 0, len(m.Parents))
	parentGraphs := make([]*domain.Graph, 0, len(m.Parents))
	for _, entry := range m.Parents {
		parentPath, err := resolveParent(dir, entry)
		if err != nil {
			return nil, zerr.With(err, "manifest", path)
		}
		parent, err := s.load(parentPath, stack)
		if err != nil {
			return nil, err
		}
		parents = append(parents, parent)
		parentGraphs = append(parentGraphs, parent.Graph)
	}

	strategy := domain.ClusterStrategy(m.Cluster)
	if !strategy.Valid() {
		err := domain.Classify(domain.ErrConfigParseFailed, domain.ErrInvalidClusterStrategy)
		return nil, zerr.With(zerr.With(err, "manifest", path), "cluster", m.Cluster)
	}
	for _, p := range m.Deny {
		if err := transform.ValidatePattern(p); err != nil {
			return nil, zerr.With(domain.Classify(domain.ErrConfigParseFailed, err), "manifest", path)
		}
	}

	name := m.Name
	if name == "" {
		name = filepath.Base(dir)
	}

	g := domain.NewGraph(name, parentGraphs...)
	for i := range m.Units {
		if err := g.AddUnit(buildUnit(dir, &m.Units[i])); err != nil {
			return nil, zerr.With(err, "manifest", path)
		}
	}
	if err := g.Validate(); err != nil {
		return nil, zerr.With(err, "manifest", path)
	}

	layout := &domain.Layout{
		Graph:    g,
		Strategy: strategy,
		Deny:     m.Deny,
		Parents:  parents,
		Path:     path,
	}
	s.layouts[path] = layout

	s.loader.Logger.Debug("loaded manifest", "manifest", path, "graph", name, "units", g.Len(), "parents", len(parents))
	return layout, nil
}

func buildUnit(dir string, dto *UnitDTO) *domain.Unit {
	return &domain.Unit{
		Name:                domain.NewInternedString(dto.Name),
		Namespaces:          canonicalizeStrings(dto.Namespaces),
		Opens:               canonicalizeStrings(dto.Opens),
		Open:                dto.Open,
		Reads:               dedupeStrings(dto.Reads),
		Location:            resolveLocation(dir, dto.Location),
		Attributes:          dto.Attributes,
		NamespaceAttributes: dto.NamespaceAttributes,
	}
}

// findManifest returns the absolute manifest path for path.
// A directory is searched upwards until strata.yaml is found or the root is reached.
func findManifest(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, err.Error()), "path", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "stat manifest path"), "path", abs)
	}
	if !info.IsDir() {
		return abs, nil
	}

	currentDir := abs
	for {
		candidate := filepath.Join(currentDir, domain.ManifestFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "search manifest"), "cwd", abs)
}

// resolveParent turns a parent entry into a manifest path. Entries are
// relative to the declaring manifest's directory; a directory entry means the
// strata.yaml directly inside it.
func resolveParent(dir, entry string) (string, error) {
	p := entry
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	p = filepath.Clean(p)

	info, err := os.Stat(p)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "parent manifest"), "parent", entry)
	}
	if info.IsDir() {
		p = filepath.Join(p, domain.ManifestFileName)
		if _, err := os.Stat(p); err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "parent manifest"), "parent", entry)
		}
	}
	return p, nil
}

func resolveLocation(dir, location string) string {
	if location == "" || filepath.IsAbs(location) {
		return location
	}
	return filepath.Join(dir, location)
}

// canonicalizeStrings sorts, deduplicates and interns strs.
func canonicalizeStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}

	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return domain.NewInternedStrings(slices.Compact(sorted))
}

// dedupeStrings interns strs, dropping repeats but keeping declared order.
func dedupeStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(strs))
	out := make([]string, 0, len(strs))
	for _, s := range strs {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return domain.NewInternedStrings(out)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is resolved by the loader
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Classify(domain.ErrConfigReadFailed, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return domain.Classify(domain.ErrConfigParseFailed, err)
	}
	return nil
}
