package questionnaire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// MaxScore is the upper bound of a normalized score.
const MaxScore = 100.0

// CheckScore reports whether v is a usable score for c: a finite number
// in [0, MaxScore].
func CheckScore(c Category, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("score for %s must be a finite number, got %v", c, v)
	}
	if v < 0 || v > MaxScore {
		return fmt.Errorf("score for %s must be between 0 and %v, got %v", c, MaxScore, v)
	}
	return nil
}

// ScoreMap holds one normalized score per category, indexed by Category.
// The zero value scores every category 0.
type ScoreMap [numCategories]float64

// Get returns the score for c.
func (m ScoreMap) Get(c Category) float64 {
	if !c.Valid() {
		return 0
	}
	return m[c]
}

// Score normalizes answers into a 0..100 score per category:
//
//	((sum - count) / (count * 4)) * 100, floored at 0
//
// A category with no answered questions scores 0. Answers for ids that
// are not in the bank are ignored.
func Score(bank *Bank, answers Answers) ScoreMap {
	var sum, count [numCategories]int
	for _, q := range bank.questions {
		v, ok := answers[q.ID]
		if !ok {
			continue
		}
		sum[q.Category] += v
		count[q.Category]++
	}

	var scores ScoreMap
	for c := range scores {
		if count[c] == 0 {
			continue
		}
		s := float64(sum[c]-count[c]) / float64(count[c]*4) * 100
		scores[c] = max(0, s)
	}
	return scores
}

// CategoryScore pairs a category with its score.
type CategoryScore struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Score    float64  `json:"score"`
}

// Rank orders categories by descending score. Equal scores keep
// declaration order.
func Rank(m ScoreMap) []CategoryScore {
	out := make([]CategoryScore, numCategories)
	for i := range out {
		c := Category(i)
		out[i] = CategoryScore{Category: c, Label: c.Label(), Score: m[c]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// MarshalJSON writes the scores as an object keyed by category name in
// declaration order.
func (m ScoreMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(categoryNames[i]))
		buf.WriteByte(':')
		buf.Write(strconv.AppendFloat(nil, s, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object keyed by category name or label.
// Missing categories score 0. A category given twice, by name and by
// label, is rejected.
func (m *ScoreMap) UnmarshalJSON(b []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var (
		out  ScoreMap
		seen [numCategories]bool
	)
	for k, v := range raw {
		c, err := ParseCategory(k)
		if err != nil {
			return err
		}
		if seen[c] {
			return fmt.Errorf("duplicate score for %s", c)
		}
		seen[c] = true
		if err := CheckScore(c, v); err != nil {
			return err
		}
		out[c] = v
	}
	*m = out
	return nil
}
