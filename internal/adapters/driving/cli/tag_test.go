package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocumentFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const trainDoc = `{
	"id": "doc-1",
	"text": "From Berlin to Hamburg by train.",
	"annotations": [
		{"type": "LocationMention", "begin": 5, "end": 11},
		{"type": "LocationMention", "begin": 15, "end": 22}
	]
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestTagCmd_DryRunPrintsQueryPayload(t *testing.T) {
	docPath := writeDocumentFile(t, trainDoc)

	out, err := execute(t, "tag",
		"--file", docPath,
		"--type", "LocationMention",
		"--dry-run=true",
	)
	require.NoError(t, err)

	var query map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &query))
	queries, ok := query["queries"].([]any)
	require.True(t, ok)
	require.Len(t, queries, 2)
	first, ok := queries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1", first["reference"])
	assert.Equal(t, "Berlin", first["text"])
}

func TestTagCmd_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/process", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"modification": {"user": "geonames-fst", "timestamp": 1700000000, "comment": ""},
			"results": [
				{"reference": "1", "entry": {"id": 2950159, "name": "Berlin",
					"latitude": 52.5, "longitude": 13.4, "feature_class": "P",
					"feature_code": "PPLC", "country_code": "DE",
					"adm1": "", "adm2": "", "adm3": "", "adm4": ""}}
			]
		}`))
	}))
	defer server.Close()

	docPath := writeDocumentFile(t, trainDoc)

	out, err := execute(t, "tag",
		"--file", docPath,
		"--type", "LocationMention",
		"--endpoint", server.URL,
		"--dry-run=false",
		"--json=true",
	)
	require.NoError(t, err)

	var enriched enrichedDocument
	require.NoError(t, json.Unmarshal([]byte(out), &enriched))
	assert.Equal(t, "doc-1", enriched.ID)
	require.Len(t, enriched.Entities, 1)
	assert.Equal(t, 5, enriched.Entities[0].Begin)
	assert.Equal(t, 11, enriched.Entities[0].End)
	assert.Equal(t, "Berlin", enriched.Entities[0].Text)
	assert.Equal(t, int64(2950159), enriched.Entities[0].Entity.ID)
	require.Len(t, enriched.Modifications, 1)
	assert.Equal(t, "geonames-fst", enriched.Modifications[0].User)
}

func TestTagCmd_InvalidOffsetsRejected(t *testing.T) {
	docPath := writeDocumentFile(t, `{
		"text": "short",
		"annotations": [{"type": "LocationMention", "begin": 0, "end": 99}]
	}`)

	_, err := execute(t, "tag",
		"--file", docPath,
		"--type", "LocationMention",
		"--dry-run=true",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside text")
}

func TestTagCmd_UnreadableDocumentFile(t *testing.T) {
	_, err := execute(t, "tag", "--file", "/nonexistent/doc.json", "--dry-run=true")
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "geotag version")
}
