package kernel_test

import (
	"encoding/json"
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.False(t, id1.IsZero())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	testCases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"canonical", canonical, false},
		{"braces", "{550e8400-e29b-41d4-a716-446655440000}", false},
		{"urn", "urn:uuid:550e8400-e29b-41d4-a716-446655440000", false},
		{"no_hyphens", "550e8400e29b41d4a716446655440000", false},
		{"garbage", "not-a-uuid", true},
		{"empty", "", true},
		{"nil_uuid", uuid.Nil.String(), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		})
	}
}

func TestUUID_ZeroValueIsInvalid(t *testing.T) {
	var id kernel.UUID

	require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}

func TestMustUUIDFromString_Panics(t *testing.T) {
	assert.Panics(t, func() { kernel.MustUUIDFromString("nope") })
	assert.NotPanics(t, func() { kernel.MustUUIDFromString("550e8400-e29b-41d4-a716-446655440000") })
}

func TestUUID_JSON(t *testing.T) {
	id := kernel.MustUUIDFromString("550e8400-e29b-41d4-a716-446655440000")

	raw, err := json.Marshal(map[string]kernel.UUID{"orderId": id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"orderId":"550e8400-e29b-41d4-a716-446655440000"}`, string(raw))

	var decoded map[string]kernel.UUID
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, id.IsEqual(decoded["orderId"]))
}

func TestUUIDFromGoogle_RoundTrip(t *testing.T) {
	g := uuid.New()

	assert.Equal(t, g, kernel.UUIDFromGoogle(g).Google())
}

func TestClocks(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, at, kernel.FixedClock{At: at}.Now())
	assert.Equal(t, time.UTC, kernel.SystemClock{}.Now().Location())
}
