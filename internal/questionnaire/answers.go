package questionnaire

// Likert bounds for a single answer.
const (
	MinValue = 1
	MaxValue = 5
)

// Answers maps question ID to the recorded Likert value.
type Answers map[string]int

// ValidValue reports whether v is an acceptable answer.
func ValidValue(v int) bool {
	return v >= MinValue && v <= MaxValue
}

// Clone returns an independent copy of a.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Option is one labelled point on the answer scale.
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
	Hint  string `json:"hint"`
}

var options = []Option{
	{Value: 1, Label: "never", Hint: "没有"},
	{Value: 2, Label: "rarely", Hint: "很少"},
	{Value: 3, Label: "sometimes", Hint: "有时"},
	{Value: 4, Label: "often", Hint: "经常"},
	{Value: 5, Label: "always", Hint: "总是"},
}

// Options returns the answer scale from never to always.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}
