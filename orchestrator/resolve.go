package orchestrator

// Resolve picks the label holding a strict majority of the bucket's votes
// (one vote per record) and the text of its highest-confidence record, the
// first one on ties. A tie for the top count or a plurality without majority
// is undecided.
func Resolve(records []Record) (label, exemplar string, ok bool) {
	if len(records) == 0 {
		return "", "", false
	}

	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Emotion.Label]++
	}

	maxCount, atMax := 0, 0
	for l, c := range counts {
		switch {
		case c > maxCount:
			maxCount, atMax, label = c, 1, l
		case c == maxCount:
			atMax++
		}
	}
	if atMax != 1 || float64(maxCount) <= float64(len(records))/2 {
		return "", "", false
	}

	best := -1.0
	for _, r := range records {
		if r.Emotion.Label == label && r.Emotion.Score > best {
			best = r.Emotion.Score
			exemplar = r.Text
		}
	}
	return label, exemplar, true
}
