package ports

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// BlobStore keeps immutable blobs addressed by their digest.
type BlobStore interface {
	// Put stores data and returns a locator for it.
	Put(data []byte) (string, error)

	// Get retrieves the blob with the given digest.
	// Returns nil, nil if not found.
	Get(digest string) ([]byte, error)
}
