package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
)

const sampleDescriptor = `Version: 1.0
Vendor: acme

Name: x.impl
Version: 1.1
Sealed: true
`

func TestParseDescriptor(t *testing.T) {
	d, err := domain.ParseDescriptor([]byte(sampleDescriptor))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Version": "1.0", "Vendor": "acme"}, d.Main)
	assert.Equal(t, map[string]string{"Version": "1.1", "Sealed": "true"}, d.Sections["x.impl"])
}

func TestDescriptor_Merged(t *testing.T) {
	d, err := domain.ParseDescriptor([]byte(sampleDescriptor))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Version": "1.1", "Vendor": "acme", "Sealed": "true"}, d.Merged("x.impl"))
	assert.Equal(t, map[string]string{"Version": "1.0", "Vendor": "acme"}, d.Merged("x"))
}

func TestDescriptor_BytesRoundTrip(t *testing.T) {
	d, err := domain.ParseDescriptor([]byte(sampleDescriptor))
	require.NoError(t, err)

	again, err := domain.ParseDescriptor(d.Bytes())
	require.NoError(t, err)
	assert.Equal(t, d, again)
	assert.Equal(t, "Vendor: acme\nVersion: 1.0\n\nName: x.impl\nSealed: true\nVersion: 1.1\n", string(d.Bytes()))
}

func TestParseDescriptor_Invalid(t *testing.T) {
	_, err := domain.ParseDescriptor([]byte("no separator here\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDescriptor))
}

func TestUnit_Descriptor(t *testing.T) {
	u := &domain.Unit{
		Name:                domain.NewInternedString("app"),
		Attributes:          map[string]string{"Version": "2"},
		NamespaceAttributes: map[string]map[string]string{"x": {"Sealed": "true"}},
	}

	d := u.Descriptor()
	assert.Equal(t, map[string]string{"Version": "2", "Sealed": "true"}, d.Merged("x"))
}

func TestUnit_Visibility(t *testing.T) {
	u := &domain.Unit{
		Name:       domain.NewInternedString("app"),
		Namespaces: domain.NewInternedStrings([]string{"x", "x.internal"}),
		Opens:      domain.NewInternedStrings([]string{"x"}),
	}

	assert.True(t, u.Declares("x.internal"))
	assert.False(t, u.Declares("y"))
	assert.True(t, u.IsOpen("x"))
	assert.False(t, u.IsOpen("x.internal"))

	u.Open = true
	assert.True(t, u.IsOpen("x.internal"))
}
