package orchestrator

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/comment-moments/clients"
)

// Report is the serialisable result of one analysis run.
type Report struct {
	VideoID     string    `json:"video_id" yaml:"video_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Count       int       `json:"count" yaml:"count"`
	Moments     []Moment  `json:"emotions" yaml:"emotions"`
}

func NewReport(videoID string, moments []Moment) Report {
	if moments == nil {
		moments = []Moment{}
	}
	return Report{VideoID: videoID, GeneratedAt: time.Now().UTC(), Count: len(moments), Moments: moments}
}

// Timeline converts the report for the visualization service.
func (r Report) Timeline() clients.TimelineReq {
	pts := make([]clients.TimelinePoint, 0, len(r.Moments))
	for _, m := range r.Moments {
		pts = append(pts, clients.TimelinePoint{Timestamp: m.Timestamp, Emotion: m.Emotion, Exemplar: m.Exemplar})
	}
	return clients.TimelineReq{VideoID: r.VideoID, Points: pts}
}

// WriteReport encodes r as "json" (indented) or "yaml".
func WriteReport(w io.Writer, r Report, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteReportFile writes r to path, creating parent directories.
func WriteReportFile(path string, r Report, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteReport(f, r, format); err != nil {
		return err
	}
	return f.Close()
}
