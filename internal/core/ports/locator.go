package ports

import "context"

//go:generate mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks

// LocatorOpener returns the bytes a locator points at.
type LocatorOpener interface {
	Open(ctx context.Context, locator string) ([]byte, error)
}
