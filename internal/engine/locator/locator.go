package locator

import (
	"net/url"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// Scheme is the locator scheme of artifacts served by a pool.
	Scheme = "strata"

	// DescriptorName addresses a unit's descriptor blob in place of an artifact.
	DescriptorName = "@descriptor"
)

// Address is a parsed strata locator.
type Address struct {
	Pool     string
	Unit     string
	Artifact string
}

// String formats the address as a locator.
func (a Address) String() string {
	return Format(a.Pool, a.Unit, a.Artifact)
}

// Format returns the locator strata://pool/unit/artifact.
func Format(pool, unit, artifact string) string {
	u := url.URL{Scheme: Scheme, Host: pool, Path: "/" + unit + "/" + artifact}
	return u.String()
}

// FormatDescriptor returns the locator of a unit's descriptor blob.
func FormatDescriptor(pool, unit string) string {
	return Format(pool, unit, DescriptorName)
}

// Parse splits a strata locator into its address.
func Parse(loc string) (Address, error) {
	u, err := url.Parse(loc)
	if err != nil {
		return Address{}, zerr.With(domain.Classify(domain.ErrInvalidLocator, err), "locator", loc)
	}
	if u.Scheme != Scheme {
		return Address{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidLocator, "wrong scheme"), "locator", loc), "scheme", u.Scheme)
	}

	unit, artifact, ok := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if u.Host == "" || !ok || !domain.ValidQualifiedName(unit) {
		return Address{}, zerr.With(zerr.Wrap(domain.ErrInvalidLocator, "malformed strata locator"), "locator", loc)
	}
	if artifact != DescriptorName && !domain.ValidArtifactName(artifact) {
		return Address{}, zerr.With(zerr.Wrap(domain.ErrInvalidLocator, "malformed artifact name"), "locator", loc)
	}
	return Address{Pool: u.Host, Unit: unit, Artifact: artifact}, nil
}
