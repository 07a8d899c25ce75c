package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annolab/geotag/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geotag.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
[gazetteer]
url = "http://gazetteer:9714"
timeout_seconds = 30

[query]
annotation_type = "org.texttechnologylab.annotation.LocationMention"
mode = "levenshtein"
result_selection = "all"
max_dist = 2
state_limit = 10000

[query.filter]
feature_class = "P"
country_code = "DE"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	tc := cfg.TagConfig()
	assert.Equal(t, "org.texttechnologylab.annotation.LocationMention", tc.AnnotationType)
	assert.Equal(t, domain.ModeLevenshtein, tc.Mode)
	assert.Equal(t, domain.SelectAll, tc.ResultSelection)
	assert.Equal(t, 2, tc.MaxDist)
	assert.Equal(t, 10000, tc.StateLimit)
	require.NotNil(t, tc.Filter)
	assert.Equal(t, "P", tc.Filter.FeatureClass)
	assert.Equal(t, "DE", tc.Filter.CountryCode)
	assert.Empty(t, tc.Filter.FeatureCode)

	cc := cfg.ChannelConfig()
	assert.Equal(t, "http://gazetteer:9714", cc.BaseURL)
	assert.Equal(t, 30*time.Second, cc.Timeout)
}

func TestLoad_MinimalConfig(t *testing.T) {
	path := writeConfig(t, `
[query]
annotation_type = "LocationMention"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	tc := cfg.TagConfig()
	assert.Equal(t, "LocationMention", tc.AnnotationType)
	assert.Nil(t, tc.Filter)
	assert.Equal(t, domain.ModeFind, tc.EffectiveMode())
	assert.Equal(t, domain.SelectFirst, tc.EffectiveSelection())

	cc := cfg.ChannelConfig()
	assert.Empty(t, cc.BaseURL, "channel applies its own default")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `[query`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}
