package orchestrator

type EmotionScore struct {
	Label string
	Score float64
}

// Record is a timestamped, classified comment. Text is the original or the
// normalized comment depending on analysis.store_text.
type Record struct {
	Text      string
	Emotion   EmotionScore
	Timestamp int // sec
}

// Buckets maps a rounded timestamp to the records sharing it. Only populated
// keys exist.
type Buckets map[int][]Record

// Moment is one emotionally dominant time window.
type Moment struct {
	Timestamp int    `json:"timestamp" yaml:"timestamp"` // bucket key, sec
	Emotion   string `json:"emotion" yaml:"emotion"`
	Exemplar  string `json:"exemplar,omitempty" yaml:"exemplar,omitempty"`
}
