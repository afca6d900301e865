package orchestrator

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() Report {
	return NewReport("vid", []Moment{
		{Timestamp: 85, Emotion: "joy", Exemplar: "1:23 so funny"},
		{Timestamp: 600, Emotion: "sadness", Exemplar: "10:00 sad ending"},
	})
}

func TestNewReportNeverNil(t *testing.T) {
	r := NewReport("vid", nil)
	assert.NotNil(t, r.Moments)
	assert.Equal(t, 0, r.Count)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, r, "json"))
	assert.Contains(t, buf.String(), `"emotions": []`)
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), "json"))

	var got struct {
		VideoID  string   `json:"video_id"`
		Count    int      `json:"count"`
		Emotions []Moment `json:"emotions"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "vid", got.VideoID)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, sampleReport().Moments, got.Emotions)
}

func TestWriteReportYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), "yaml"))
	assert.Contains(t, buf.String(), "video_id: vid")

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got["emotions"], 2)
}

func TestWriteReportUnknownFormat(t *testing.T) {
	assert.Error(t, WriteReport(&bytes.Buffer{}, sampleReport(), "xml"))
}

func TestWriteReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "vid.json")
	require.NoError(t, WriteReportFile(path, sampleReport(), "json"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"timestamp": 85`)
}

func TestReportTimeline(t *testing.T) {
	tl := sampleReport().Timeline()
	assert.Equal(t, "vid", tl.VideoID)
	require.Len(t, tl.Points, 2)
	assert.Equal(t, 600, tl.Points[1].Timestamp)
	assert.Equal(t, "sadness", tl.Points[1].Emotion)
}
