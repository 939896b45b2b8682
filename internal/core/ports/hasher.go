package ports

// Hasher computes content digests.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// Digest returns the hex digest of data.
	Digest(data []byte) string
}
