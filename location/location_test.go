package location

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An extractor without credentials: pattern matching only.
func bareExtractor() *Extractor {
	return &Extractor{}
}

func TestExtractStreetAddress(t *testing.T) {
	info := bareExtractor().Extract(context.Background(), "Flooding at 1234 SW 8th Street Miami FL")

	require.NotEmpty(t, info.Address)
	assert.Contains(t, info.Address, "1234")
	assert.Equal(t, "pattern_matching", info.Method)
	assert.InDelta(t, 0.5, info.Confidence, 1e-9)
	assert.False(t, info.HasCoords)
}

func TestExtractLandmark(t *testing.T) {
	info := bareExtractor().Extract(context.Background(), "Person trapped near Jackson Memorial Hospital")

	require.NotEmpty(t, info.Address)
	assert.Contains(t, info.Address, "Hospital")
}

func TestExtractNothingFound(t *testing.T) {
	info := bareExtractor().Extract(context.Background(), "someone fell")

	assert.Empty(t, info.Address)
	assert.Equal(t, "none", info.Method)
	assert.Zero(t, info.Confidence)
}

func TestExtractEmptyText(t *testing.T) {
	info := bareExtractor().Extract(context.Background(), "   ")

	assert.Equal(t, "none", info.Method)
	assert.False(t, info.HasCoords)
}

func TestSuggestImprovements(t *testing.T) {
	vague := SuggestImprovements("help over there please come")
	require.Len(t, vague, 1)
	assert.Contains(t, vague[0], "more specific")

	short := SuggestImprovements("help me")
	require.NotEmpty(t, short)
	assert.Contains(t, short[len(short)-1], "more location details")

	assert.Empty(t, SuggestImprovements("Water main broke at 1200 Brickell Avenue"))
}
