package questionnaire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func followUpCategories(qs []Question) []Category {
	var out []Category
	for _, q := range qs {
		if len(out) == 0 || out[len(out)-1] != q.Category {
			out = append(out, q.Category)
		}
	}
	return out
}

func TestSelectFollowUps(t *testing.T) {
	b := Default()
	tests := []struct {
		name      string
		overrides map[Category]int
		want      []Category
	}{
		{name: "nothing flagged", want: nil},
		{name: "below threshold", overrides: map[Category]int{YinDeficiency: 2, DampHeat: 2}, want: nil},
		{name: "neutral is never probed", overrides: map[Category]int{Balanced: 5}, want: nil},
		{name: "threshold is inclusive", overrides: map[Category]int{DampHeat: 3}, want: []Category{DampHeat}},
		{
			name:      "two flagged",
			overrides: map[Category]int{QiStagnation: 4, YangDeficiency: 5},
			want:      []Category{YangDeficiency, QiStagnation},
		},
		{
			name:      "capped at first two in core order",
			overrides: map[Category]int{SpecialDiathesis: 5, BloodStasis: 5, QiDeficiency: 3, PhlegmDampness: 4},
			want:      []Category{QiDeficiency, PhlegmDampness},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectFollowUps(b, coreAnswers(b, 1, tt.overrides))
			if diff := cmp.Diff(tt.want, followUpCategories(got)); diff != "" {
				t.Errorf("categories mismatch (-want +got):\n%s", diff)
			}
			if len(got) != 2*len(tt.want) {
				t.Errorf("len = %d, want %d", len(got), 2*len(tt.want))
			}
			for _, q := range got {
				if q.Tier != TierFollowUp {
					t.Errorf("question %s has tier %d", q.ID, q.Tier)
				}
			}
		})
	}
}

func TestSelectFollowUps_AllFlaggedNeverExceedsCap(t *testing.T) {
	b := Default()
	got := SelectFollowUps(b, coreAnswers(b, 5, nil))
	cats := followUpCategories(got)
	if len(cats) != MaxFollowUpCategories {
		t.Fatalf("categories = %v, want %d", cats, MaxFollowUpCategories)
	}
	if cats[0] != QiDeficiency || cats[1] != YangDeficiency {
		t.Errorf("categories = %v, want [qi_deficiency yang_deficiency]", cats)
	}
}

func TestSelectFollowUps_Deterministic(t *testing.T) {
	b := Default()
	a := coreAnswers(b, 3, map[Category]int{QiDeficiency: 1})
	first := SelectFollowUps(b, a)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, SelectFollowUps(b, a)); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}
