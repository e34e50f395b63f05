package questionnaire

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultBank_Shape(t *testing.T) {
	b := Default()

	core := b.ByTier(TierCore)
	if len(core) != 9 {
		t.Fatalf("core questions = %d, want 9", len(core))
	}
	for i, q := range core {
		if q.Category != Category(i) {
			t.Errorf("core[%d].Category = %s, want %s", i, q.Category, Category(i))
		}
	}

	followUps := b.ByTier(TierFollowUp)
	if len(followUps) != 16 {
		t.Fatalf("follow-up questions = %d, want 16", len(followUps))
	}
	for _, c := range Categories() {
		got := len(b.ByCategoryAndTier(c, TierFollowUp))
		want := 2
		if c.IsNeutral() {
			want = 0
		}
		if got != want {
			t.Errorf("follow-ups for %s = %d, want %d", c, got, want)
		}
	}

	if b.Len() != len(core)+len(followUps) {
		t.Errorf("Len = %d, want %d", b.Len(), len(core)+len(followUps))
	}
}

func TestDefaultBank_SameInstance(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return the same bank on every call")
	}
}

func TestBank_FiltersReturnCopies(t *testing.T) {
	b := Default()

	all := b.All()
	all[0].Text = "mutated"
	core := b.ByTier(TierCore)
	core[1].Category = Balanced

	if b.All()[0].Text == "mutated" {
		t.Error("All exposed the bank's backing slice")
	}
	if b.ByTier(TierCore)[1].Category != QiDeficiency {
		t.Error("ByTier exposed the bank's backing slice")
	}
}

func TestBank_Filter(t *testing.T) {
	b := Default()
	tests := []struct {
		tier, category string
		want           int
	}{
		{"", "", b.Len()},
		{"core", "", 9},
		{"follow_up", "", 16},
		{"", "气郁质", 3},
		{"core", "qi_stagnation", 1},
		{"follow_up", "balanced", 0},
	}
	for _, tt := range tests {
		qs, err := b.Filter(tt.tier, tt.category)
		if err != nil {
			t.Errorf("Filter(%q, %q): %v", tt.tier, tt.category, err)
			continue
		}
		if qs == nil {
			t.Errorf("Filter(%q, %q) = nil, want empty slice", tt.tier, tt.category)
		}
		if len(qs) != tt.want {
			t.Errorf("Filter(%q, %q) = %d questions, want %d", tt.tier, tt.category, len(qs), tt.want)
		}
	}

	if _, err := b.Filter("extra", ""); err == nil {
		t.Error("expected error for unknown tier")
	}
	if _, err := b.Filter("", "windy"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestBank_Lookup(t *testing.T) {
	b := Default()
	q, ok := b.Lookup("core-damp-heat")
	if !ok {
		t.Fatal("Lookup(core-damp-heat) not found")
	}
	if q.Category != DampHeat || q.Tier != TierCore {
		t.Errorf("Lookup returned %+v", q)
	}
	if _, ok := b.Lookup("nope"); ok {
		t.Error("Lookup(nope) should not be found")
	}
}

func TestBank_ByCategoryAndTier_Order(t *testing.T) {
	got := Default().ByCategoryAndTier(QiStagnation, TierFollowUp)
	ids := make([]string, len(got))
	for i, q := range got {
		ids[i] = q.ID
	}
	want := []string{"qi-stagnation-anxious", "qi-stagnation-sigh"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("follow-up ids mismatch (-want +got):\n%s", diff)
	}
}

func coreQuestions() []Question {
	qs := make([]Question, 0, numCategories)
	for _, c := range Categories() {
		qs = append(qs, Question{ID: "c-" + c.String(), Text: c.Label(), Category: c, Tier: TierCore})
	}
	return qs
}

func TestNewBank_Validation(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		wantEmpty bool
	}{
		{name: "no questions", questions: nil, wantEmpty: true},
		{name: "missing core category", questions: coreQuestions()[1:], wantEmpty: true},
		{
			name:      "follow-up only for a category",
			questions: append(coreQuestions()[:8], Question{ID: "f", Category: SpecialDiathesis, Tier: TierFollowUp}),
			wantEmpty: true,
		},
		{name: "duplicate id", questions: append(coreQuestions(), Question{ID: "c-balanced", Category: Balanced, Tier: TierFollowUp})},
		{name: "empty id", questions: append(coreQuestions(), Question{Category: Balanced, Tier: TierCore})},
		{name: "bad tier", questions: append(coreQuestions(), Question{ID: "x", Category: Balanced, Tier: 3})},
		{name: "bad category", questions: append(coreQuestions(), Question{ID: "x", Category: 42, Tier: TierCore})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBank(tt.questions)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.Is(err, ErrEmptyQuestionBank); got != tt.wantEmpty {
				t.Errorf("errors.Is(err, ErrEmptyQuestionBank) = %v, want %v (err: %v)", got, tt.wantEmpty, err)
			}
		})
	}
}

func TestNewBank_CoreOnly(t *testing.T) {
	b, err := NewBank(coreQuestions())
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	if n := len(b.ByTier(TierFollowUp)); n != 0 {
		t.Errorf("follow-ups = %d, want 0", n)
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"core", TierCore, false},
		{" 1 ", TierCore, false},
		{"follow-up", TierFollowUp, false},
		{"FOLLOW_UP", TierFollowUp, false},
		{"2", TierFollowUp, false},
		{"3", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTier(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
