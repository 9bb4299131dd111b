package theme

import (
	"context"
	"testing"

	"github.com/dverenev/priceadmin/internal/client/repositories/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Theme
	}{
		{"light", Light},
		{"dark", Dark},
		{"system", System},
		{"", System},
		{"neon", System},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), tt.in)
	}
}

func TestManager_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewManager(settings.NewMemoryRepository())

	assert.Equal(t, System, m.Current(ctx), "nothing stored yet")

	require.NoError(t, m.Set(ctx, Dark))
	assert.Equal(t, Dark, m.Current(ctx))

	require.NoError(t, m.Set(ctx, Light))
	assert.Equal(t, Light, m.Current(ctx))
}

func TestManager_InvalidStoredValueFallsBack(t *testing.T) {
	ctx := context.Background()
	repo := settings.NewMemoryRepository()
	require.NoError(t, repo.Set(ctx, "theme", []byte("midnight")))

	m := NewManager(repo)
	assert.Equal(t, System, m.Current(ctx))
}
