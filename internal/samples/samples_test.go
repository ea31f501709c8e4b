package samples

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchs/intake/internal/model"
)

func writeSamples(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample_transcripts.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeSamples(t, `[
		{"call_id": "CALL_A", "language": "English", "duration_seconds": 60, "transcript": "hello", "risk_level_actual": "Low", "expected_extraction": {}},
		{"call_id": "CALL_B", "language": "English", "duration_seconds": 90, "transcript": "hi there", "risk_level_actual": "High", "expected_extraction": {}}
	]`)

	lib, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, lib.All(), 2)
	assert.Equal(t, "CALL_A", lib.All()[0].CallID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeSamples(t, `[{`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoad_EmptyLibrary(t *testing.T) {
	path := writeSamples(t, `[]`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoad_MissingCallID(t *testing.T) {
	path := writeSamples(t, `[{"language": "English", "transcript": "hello", "expected_extraction": {}}]`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestByCallID(t *testing.T) {
	lib := NewLibrary([]model.ReferenceSample{
		{CallID: "CALL_A", Transcript: "hello"},
		{CallID: "CALL_B", Transcript: "hi there"},
	})

	s, err := lib.ByCallID("CALL_B")
	require.NoError(t, err)
	assert.Equal(t, "hi there", s.Transcript)

	_, err = lib.ByCallID("CALL_MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPreviews_Truncation(t *testing.T) {
	long := strings.Repeat("a", 300)
	lib := NewLibrary([]model.ReferenceSample{
		{CallID: "CALL_LONG", Language: "English", DurationSeconds: 120, Transcript: long, RiskLevelActual: "High"},
		{CallID: "CALL_SHORT", Transcript: "brief call"},
	})

	previews := lib.Previews()
	require.Len(t, previews, 2)

	assert.Equal(t, "CALL_LONG", previews[0].CallID)
	assert.Equal(t, "High", previews[0].RiskLevel)
	assert.Len(t, previews[0].Preview, 203) // 200 chars + "..."
	assert.True(t, strings.HasSuffix(previews[0].Preview, "..."))

	// Short transcripts pass through untouched.
	assert.Equal(t, "brief call", previews[1].Preview)
}

func TestLoad_BundledLibrary(t *testing.T) {
	lib, err := Load("../../data/sample_transcripts.json")
	require.NoError(t, err)

	require.NotEmpty(t, lib.All())
	for _, s := range lib.All() {
		assert.NotEmpty(t, s.CallID)
		assert.NotEmpty(t, s.Transcript)
		assert.NotEmpty(t, s.RiskLevelActual)
	}

	// The first sample drives the demo extractor's default match.
	first := lib.All()[0]
	assert.Equal(t, "Critical", first.RiskLevelActual)
	assert.Len(t, first.Expected.RiskIndicators(), 2)
}
