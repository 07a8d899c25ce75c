package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annolab/geotag/internal/core/domain"
)

func decodeMap(t *testing.T, payload []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(payload, &m))
	return m
}

func TestQuery_DefaultsAppliedOnTheWire(t *testing.T) {
	cfg := domain.TagConfig{}
	payload, err := NewQuery(&cfg, []QueryEntry{{Reference: "1", Text: "Berlin"}}).Encode()
	require.NoError(t, err)

	m := decodeMap(t, payload)
	assert.Equal(t, "find", m["mode"])
	assert.Equal(t, "first", m["result_selection"])
	assert.NotContains(t, m, "max_dist")
	assert.NotContains(t, m, "state_limit")
	assert.NotContains(t, m, "filter")
}

func TestQuery_EmptyQueriesSerializesAsArray(t *testing.T) {
	cfg := domain.TagConfig{}
	payload, err := NewQuery(&cfg, nil).Encode()
	require.NoError(t, err)

	m := decodeMap(t, payload)
	queries, ok := m["queries"].([]any)
	require.True(t, ok, "queries must be a JSON array, not null")
	assert.Empty(t, queries)
}

func TestQuery_NumericTuningSerializedAsStrings(t *testing.T) {
	cfg := domain.TagConfig{
		Mode:       domain.ModeLevenshtein,
		MaxDist:    2,
		StateLimit: 10000,
	}
	payload, err := NewQuery(&cfg, nil).Encode()
	require.NoError(t, err)

	m := decodeMap(t, payload)
	assert.Equal(t, "levenshtein", m["mode"])
	assert.Equal(t, "2", m["max_dist"])
	assert.Equal(t, "10000", m["state_limit"])
}

func TestQuery_StateLimitOnlyForLevenshtein(t *testing.T) {
	cfg := domain.TagConfig{
		Mode:       domain.ModeFuzzy,
		MaxDist:    1,
		StateLimit: 500,
	}
	payload, err := NewQuery(&cfg, nil).Encode()
	require.NoError(t, err)

	m := decodeMap(t, payload)
	assert.Equal(t, "1", m["max_dist"])
	assert.NotContains(t, m, "state_limit")
}

func TestQuery_FilterPassthrough(t *testing.T) {
	cfg := domain.TagConfig{
		Filter: &domain.ResultFilter{FeatureClass: "P", CountryCode: "DE"},
	}
	payload, err := NewQuery(&cfg, nil).Encode()
	require.NoError(t, err)

	m := decodeMap(t, payload)
	filter, ok := m["filter"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "P", filter["feature_class"])
	assert.Equal(t, "DE", filter["country_code"])
	assert.NotContains(t, filter, "feature_code")
}

func TestQuery_EntriesKeepOrder(t *testing.T) {
	entries := []QueryEntry{
		{Reference: "1", Text: "Berlin"},
		{Reference: "2", Text: "Hamburg"},
		{Reference: "3", Text: "Großer Feldberg"},
	}
	cfg := domain.TagConfig{}
	payload, err := NewQuery(&cfg, entries).Encode()
	require.NoError(t, err)

	var decoded Query
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Len(t, decoded.Queries, 3)
	for i, entry := range entries {
		assert.Equal(t, entry, decoded.Queries[i])
	}
}
