package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Error categories. Every error surfaced by the loading runtime wraps exactly
// one of these, so callers can branch with errors.Is.
var (
	// ErrNotFound is returned when an artifact or resource is absent, its name is invalid,
	// or the transformer rejected it.
	ErrNotFound = zerr.New("not found")

	// ErrConstruction is returned when a pool or domain cannot be built.
	ErrConstruction = zerr.New("construction failed")

	// ErrConflict is returned when a visibility edge would give a namespace a second owner.
	ErrConflict = zerr.New("ownership conflict")

	// ErrIllegalUse is returned when an operation targets a unit the pool does not manage
	// or a namespace the unit does not declare.
	ErrIllegalUse = zerr.New("illegal use")
)

var (
	// ErrUnitAlreadyExists is returned when attempting to add a unit with a name that already exists.
	ErrUnitAlreadyExists = zerr.New("unit already exists")

	// ErrMissingUnit is returned when a unit reads a unit that exists neither in its graph nor in an ancestor.
	ErrMissingUnit = zerr.New("missing unit")

	// ErrCycleDetected is returned when static reads inside one graph form a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrInvalidName is returned when a unit, namespace or artifact name is malformed.
	ErrInvalidName = zerr.New("invalid name")

	// ErrNamespaceOwnedTwice is returned when two units of one domain map the same namespace.
	ErrNamespaceOwnedTwice = zerr.New("namespace has more than one owner")

	// ErrAncestorMismatch is returned when the supplied ancestors differ from the graph's parents.
	ErrAncestorMismatch = zerr.New("ancestors do not match graph parents")

	// ErrSourceOpenFailed is returned when a unit's artifact source cannot be opened.
	ErrSourceOpenFailed = zerr.New("failed to open artifact source")

	// ErrSourceReadFailed is returned when reading an entry from an artifact source fails.
	ErrSourceReadFailed = zerr.New("failed to read artifact source entry")

	// ErrBindFailed is returned when the privileged binder rejects an ancestor.
	ErrBindFailed = zerr.New("failed to bind ancestor")

	// ErrEdgeCommitFailed is returned when the structural edge commit fails.
	ErrEdgeCommitFailed = zerr.New("failed to commit visibility edge")

	// ErrTransformRejected is returned when the transformer returned no bytes or an error.
	ErrTransformRejected = zerr.New("transformer rejected artifact")

	// ErrUnknownUnit is returned when a unit is not managed by the pool.
	ErrUnknownUnit = zerr.New("unit not managed by pool")

	// ErrUndeclaredNamespace is returned when a runtime artifact lies outside its unit's namespaces.
	ErrUndeclaredNamespace = zerr.New("namespace not declared by unit")

	// ErrEncapsulated is returned when a resource lives in a namespace the unit does not open.
	ErrEncapsulated = zerr.New("resource is encapsulated")

	// ErrAmbiguousResource is returned when several units provide an unowned resource.
	ErrAmbiguousResource = zerr.New("resource provided by more than one unit")

	// ErrInvalidLocator is returned when a locator cannot be parsed.
	ErrInvalidLocator = zerr.New("invalid locator")

	// ErrUnknownScheme is returned when no opener handles a locator scheme.
	ErrUnknownScheme = zerr.New("unknown locator scheme")

	// ErrInvalidDescriptor is returned when a descriptor blob cannot be parsed.
	ErrInvalidDescriptor = zerr.New("invalid descriptor")

	// ErrStoreCreateFailed is returned when the blob store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create blob store directory")

	// ErrStoreReadFailed is returned when a blob cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read blob")

	// ErrStoreWriteFailed is returned when a blob cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write blob")

	// ErrConfigReadFailed is returned when the manifest cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read manifest")

	// ErrConfigParseFailed is returned when the manifest cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse manifest")

	// ErrConfigNotFound is returned when no manifest can be found.
	ErrConfigNotFound = zerr.New("could not find strata.yaml")

	// ErrInvalidClusterStrategy is returned when a manifest names an unknown cluster strategy.
	ErrInvalidClusterStrategy = zerr.New("invalid cluster strategy, expected 'single', 'per-unit' or 'attribute:<key>'")

	// ErrInvalidDenyPattern is returned when a manifest deny pattern cannot be compiled.
	ErrInvalidDenyPattern = zerr.New("invalid deny pattern")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings")

	// ErrInvalidAssignment is returned when a key=value flag is malformed.
	ErrInvalidAssignment = zerr.New("invalid assignment, expected key=value")

	// ErrWarmIncomplete is returned when some artifacts did not resolve during warm-up.
	ErrWarmIncomplete = zerr.New("some artifacts did not resolve")
)

// Classify ties specific causes to their category so that errors.Is matches all of them.
func Classify(category error, causes ...error) error {
	return &classified{category: category, causes: causes}
}

type classified struct {
	category error
	causes   []error
}

func (e *classified) Error() string {
	msg := e.category.Error()
	for _, c := range e.causes {
		msg += ": " + c.Error()
	}
	return msg
}

func (e *classified) Unwrap() []error {
	return append(slices.Clone(e.causes), e.category)
}
