package locator_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.trai.ch/strata/internal/engine/locator"
	"go.uber.org/mock/gomock"
)

type fakeTarget struct {
	artifacts   map[string][]byte
	descriptors map[string][]byte
}

func (f *fakeTarget) Resolve(_ context.Context, unit, artifact string) ([]byte, error) {
	data, ok := f.artifacts[unit+"/"+artifact]
	if !ok {
		return nil, domain.Classify(domain.ErrNotFound, errors.New(artifact))
	}
	return data, nil
}

func (f *fakeTarget) Descriptor(unit string) ([]byte, error) {
	data, ok := f.descriptors[unit]
	if !ok {
		return nil, domain.Classify(domain.ErrIllegalUse, domain.ErrUnknownUnit)
	}
	return data, nil
}

func TestFormatAndParse(t *testing.T) {
	loc := locator.Format("boot-0", "app", "x.y.$Foo")
	assert.Equal(t, "strata://boot-0/app/x.y.$Foo", loc)

	addr, err := locator.Parse(loc)
	require.NoError(t, err)
	assert.Equal(t, locator.Address{Pool: "boot-0", Unit: "app", Artifact: "x.y.$Foo"}, addr)
	assert.Equal(t, loc, addr.String())

	desc := locator.FormatDescriptor("boot", "app.core")
	assert.Equal(t, "strata://boot/app.core/@descriptor", desc)
	addr, err = locator.Parse(desc)
	require.NoError(t, err)
	assert.Equal(t, locator.DescriptorName, addr.Artifact)
}

func TestParse_Invalid(t *testing.T) {
	for _, loc := range []string{
		"cas://0000/app/x.Foo",
		"strata:///app/x.Foo",
		"strata://boot/app",
		"strata://boot/app/x..Foo",
		"strata://boot/not-a-unit/x.Foo",
		"strata://boot/app/@other",
		"://",
	} {
		_, err := locator.Parse(loc)
		assert.True(t, errors.Is(err, domain.ErrInvalidLocator), loc)
	}
}

func TestRegistry_RegisterSuffixesCollisions(t *testing.T) {
	r := locator.NewRegistry()
	target := &fakeTarget{}

	assert.Equal(t, "boot", r.Register("boot", target))
	assert.Equal(t, "boot-0", r.Register("boot", target))
	assert.Equal(t, "boot-1", r.Register("boot", target))
	assert.Equal(t, "mypool.pool_1", r.Register("my pool/.pool_1!", target))
	assert.Equal(t, 4, r.Len())
}

func TestRegistry_RegisterFallsBackForEmptyID(t *testing.T) {
	r := locator.NewRegistry()
	target := &fakeTarget{artifacts: map[string][]byte{"a/p1.X": []byte("x")}}

	id := r.Register("!!", target)
	assert.Equal(t, locator.FallbackID, id)
	assert.Equal(t, locator.FallbackID+"-0", r.Register("", target))

	data, err := r.Open(context.Background(), locator.Format(id, "a", "p1.X"))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}

func TestRegistry_ConcurrentRegisterIsUnique(t *testing.T) {
	r := locator.NewRegistry()

	const n = 50
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = r.Register("boot", &fakeTarget{})
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], id)
		seen[id] = true
	}
	assert.True(t, seen["boot"])
	assert.True(t, seen["boot-48"])
}

func TestRegistry_Open(t *testing.T) {
	r := locator.NewRegistry()
	id := r.Register("boot", &fakeTarget{
		artifacts:   map[string][]byte{"app/x.Foo": []byte("foo")},
		descriptors: map[string][]byte{"app": []byte("Version: 1\n")},
	})

	data, err := r.Open(context.Background(), locator.Format(id, "app", "x.Foo"))
	require.NoError(t, err)
	assert.Equal(t, []byte("foo"), data)

	data, err = r.Open(context.Background(), locator.FormatDescriptor(id, "app"))
	require.NoError(t, err)
	assert.Equal(t, []byte("Version: 1\n"), data)

	for _, loc := range []string{
		locator.Format(id, "app", "x.Missing"),
		locator.Format("nobody", "app", "x.Foo"),
		locator.FormatDescriptor(id, "ghost"),
		"strata://boot/app",
	} {
		_, err := r.Open(context.Background(), loc)
		assert.True(t, errors.Is(err, domain.ErrNotFound), loc)
	}
}

func TestMux_Open(t *testing.T) {
	ctrl := gomock.NewController(t)
	cas := mocks.NewMockLocatorOpener(ctrl)

	r := locator.NewRegistry()
	id := r.Register("boot", &fakeTarget{artifacts: map[string][]byte{"app/x.Foo": []byte("foo")}})

	m := locator.NewMux(r)
	m.Handle("cas", cas)

	cas.EXPECT().Open(gomock.Any(), "cas://00ff").Return([]byte("blob"), nil)

	data, err := m.Open(context.Background(), "cas://00ff")
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), data)

	data, err = m.Open(context.Background(), locator.Format(id, "app", "x.Foo"))
	require.NoError(t, err)
	assert.Equal(t, []byte("foo"), data)

	_, err = m.Open(context.Background(), "ftp://example/x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(err, domain.ErrUnknownScheme))
}
