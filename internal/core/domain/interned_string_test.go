package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("app")
	b := domain.NewInternedString("app")

	assert.Equal(t, a, b)
	assert.Equal(t, "app", a.String())
	assert.Equal(t, 0, a.Compare(b))
	assert.Negative(t, domain.NewInternedString("a").Compare(domain.NewInternedString("b")))
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
	assert.False(t, domain.NewInternedString("").IsZero())
}

func TestInternedString_JSON(t *testing.T) {
	original := domain.NewInternedStrings([]string{"x", "y"})

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `["x","y"]`, string(data))

	var decoded []domain.InternedString
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
	assert.Equal(t, []string{"x", "y"}, domain.Strings(decoded))
}
