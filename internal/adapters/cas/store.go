// Package cas implements a content addressable blob store for runtime artifacts.
package cas

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheme is the locator scheme of blobs kept by Store.
const Scheme = "cas"

const blobExt = ".zst"

var (
	_ ports.BlobStore     = (*Store)(nil)
	_ ports.LocatorOpener = (*Store)(nil)
)

// Store keeps zstd-compressed blobs in a directory tree keyed by digest.
type Store struct {
	root    string
	hasher  ports.Hasher
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewStore creates a Store rooted at root. The directory is created on first Put.
func NewStore(root string, hasher ports.Hasher) (*Store, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create zstd encoder")
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = encoder.Close()
		return nil, zerr.Wrap(err, "failed to create zstd decoder")
	}

	return &Store{
		root:    filepath.Clean(root),
		hasher:  hasher,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Locator returns the cas locator of digest.
func Locator(digest string) string {
	return Scheme + "://" + digest
}

// Root returns the store directory.
func (s *Store) Root() string {
	return s.root
}

// Put stores data and returns its cas locator. Storing a blob twice is a no-op.
func (s *Store) Put(data []byte) (string, error) {
	digest := s.hasher.Digest(data)
	path := s.path(digest)

	if _, err := os.Stat(path); err == nil {
		return Locator(digest), nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.With(domain.Classify(domain.ErrStoreCreateFailed, err), "dir", dir)
	}

	tmp, err := os.CreateTemp(dir, digest+".*.tmp")
	if err != nil {
		return "", zerr.With(domain.Classify(domain.ErrStoreWriteFailed, err), "digest", digest)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	_, err = tmp.Write(s.encoder.EncodeAll(data, nil))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", zerr.With(domain.Classify(domain.ErrStoreWriteFailed, err), "digest", digest)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", zerr.With(domain.Classify(domain.ErrStoreWriteFailed, err), "digest", digest)
	}
	if err := os.Chmod(path, domain.FilePerm); err != nil {
		return "", zerr.With(domain.Classify(domain.ErrStoreWriteFailed, err), "digest", digest)
	}

	return Locator(digest), nil
}

// Get returns the blob with the given digest, or nil, nil if the store does not hold it.
func (s *Store) Get(digest string) ([]byte, error) {
	if !validDigest(digest) {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, "malformed digest"), "digest", digest)
	}

	//nolint:gosec // Path is built from a validated hex digest
	compressed, err := os.ReadFile(s.path(digest))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrStoreReadFailed, err), "digest", digest)
	}

	data, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrStoreReadFailed, err), "digest", digest)
	}
	if got := s.hasher.Digest(data); got != digest {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, "digest mismatch"), "digest", digest), "actual", got)
	}
	return data, nil
}

// Open implements ports.LocatorOpener for cas:// locators.
func (s *Store) Open(_ context.Context, loc string) ([]byte, error) {
	digest, ok := strings.CutPrefix(loc, Scheme+"://")
	if !ok {
		return nil, zerr.With(domain.Classify(domain.ErrNotFound, domain.ErrInvalidLocator), "locator", loc)
	}

	data, err := s.Get(digest)
	if err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrNotFound, err), "locator", loc)
	}
	if data == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "blob not in store"), "locator", loc)
	}
	return data, nil
}

// Close releases the codec resources.
func (s *Store) Close() error {
	s.decoder.Close()
	return s.encoder.Close()
}

func (s *Store) path(digest string) string {
	return filepath.Join(s.root, digest[:2], digest+blobExt)
}

func validDigest(digest string) bool {
	if len(digest) < 2 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}
