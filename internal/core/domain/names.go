package domain

import (
	"strings"
	"unicode"
)

const (
	// ArtifactExt is the file extension of artifact entries inside an artifact source.
	ArtifactExt = ".art"

	// DescriptorPath is the source entry holding a unit's descriptor blob.
	DescriptorPath = "META-INF/DESCRIPTOR"
)

// ValidIdentifier reports whether s is a single name segment.
// A segment starts with a letter, '_' or '$' and continues with letters, digits, '_' or '$'.
func ValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// ValidQualifiedName reports whether s is a non-empty dot separated list of identifiers.
// Unit names and namespaces both follow this rule.
func ValidQualifiedName(s string) bool {
	if s == "" {
		return false
	}
	for segment := range strings.SplitSeq(s, ".") {
		if !ValidIdentifier(segment) {
			return false
		}
	}
	return true
}

// ValidArtifactName reports whether name can address an artifact.
// Artifacts either live in a namespace ("a.b.Foo") or in the unnamed namespace ("Foo").
func ValidArtifactName(name string) bool {
	return ValidQualifiedName(name)
}

// NamespaceOf returns the namespace of an artifact name, or "" for the unnamed namespace.
func NamespaceOf(artifact string) string {
	i := strings.LastIndexByte(artifact, '.')
	if i < 0 {
		return ""
	}
	return artifact[:i]
}

// ArtifactPath maps an artifact name to its entry path inside an artifact source.
func ArtifactPath(artifact string) string {
	return strings.ReplaceAll(artifact, ".", "/") + ArtifactExt
}

// ArtifactName maps an entry path back to an artifact name.
// It reports false for entries that are not artifacts.
func ArtifactName(entry string) (string, bool) {
	base, ok := strings.CutSuffix(entry, ArtifactExt)
	if !ok {
		return "", false
	}
	name := strings.ReplaceAll(base, "/", ".")
	if !ValidArtifactName(name) {
		return "", false
	}
	return name, true
}

// ResourceNamespace returns the namespace a resource path maps to.
// Top-level resources map to "". Directories that are not qualified names
// (META-INF for instance) still produce a value, which simply never has an owner.
func ResourceNamespace(resource string) string {
	i := strings.LastIndexByte(resource, '/')
	if i < 0 {
		return ""
	}
	return strings.ReplaceAll(resource[:i], "/", ".")
}

// IsArtifactPath reports whether a resource path addresses an artifact entry.
func IsArtifactPath(resource string) bool {
	return strings.HasSuffix(resource, ArtifactExt)
}
