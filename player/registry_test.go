package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	registry, err := NewRegistry(nil)
	require.NoError(t, err)
	ctx := context.Background()

	assert.Equal(t, ErrMissingField, registry.Register(ctx, "", "Alice"))
	assert.Equal(t, ErrMissingField, registry.Register(ctx, "+31646118037", ""))
	assert.Equal(t, ErrInvalidPhone, registry.Register(ctx, "31646118037", "Alice"))
}

func TestPhoneOfPassthrough(t *testing.T) {
	registry, err := NewRegistry(nil)
	require.NoError(t, err)

	// Identifiers that already look like a phone number skip the lookup.
	assert.Equal(t, "+31646118037", registry.PhoneOf(context.Background(), "+31646118037"))
}
