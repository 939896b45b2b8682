package logger

// ErrorEntry exposes errorEntry fields for tests.
type ErrorEntry = errorEntry

// Message returns the entry's message.
func (e errorEntry) Message() string { return e.message }

// Metadata returns the entry's metadata.
func (e errorEntry) Metadata() map[string]any { return e.metadata }

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// NewErrorEntry builds an entry for formatting tests.
func NewErrorEntry(message string, metadata map[string]any) errorEntry {
	return errorEntry{message: message, metadata: metadata}
}
