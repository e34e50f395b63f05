package questionnaire

import (
	"fmt"
	"strings"
	"sync"
)

// Tier separates the core questions asked of everyone from the follow-ups
// asked only for categories the core answers flagged.
type Tier int

const (
	TierCore     Tier = 1
	TierFollowUp Tier = 2
)

func (t Tier) Valid() bool {
	return t == TierCore || t == TierFollowUp
}

func (t Tier) String() string {
	switch t {
	case TierCore:
		return "core"
	case TierFollowUp:
		return "follow_up"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// ParseTier accepts a tier name ("core", "follow_up") or its number.
func ParseTier(s string) (Tier, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "core", "1":
		return TierCore, nil
	case "follow_up", "followup", "2":
		return TierFollowUp, nil
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// Question is a single Likert item measuring one category.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Tier     Tier     `json:"tier"`
}

// Bank is an ordered, read-only catalog of questions. Filters return
// copies so callers cannot mutate the bank.
type Bank struct {
	questions []Question
	byID      map[string]int
}

// NewBank validates qs and returns a bank preserving their order. Every
// category must have at least one core question.
func NewBank(qs []Question) (*Bank, error) {
	if len(qs) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrEmptyQuestionBank)
	}

	b := &Bank{
		questions: make([]Question, len(qs)),
		byID:      make(map[string]int, len(qs)),
	}
	var core [numCategories]int
	for i, q := range qs {
		if q.ID == "" {
			return nil, fmt.Errorf("question %d has an empty id", i)
		}
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if !q.Category.Valid() {
			return nil, fmt.Errorf("question %q: invalid category %d", q.ID, int(q.Category))
		}
		if !q.Tier.Valid() {
			return nil, fmt.Errorf("question %q: invalid tier %d", q.ID, int(q.Tier))
		}
		if q.Tier == TierCore {
			core[q.Category]++
		}
		b.questions[i] = q
		b.byID[q.ID] = i
	}

	for c, n := range core {
		if n == 0 {
			return nil, fmt.Errorf("%w: no core question for %s", ErrEmptyQuestionBank, Category(c))
		}
	}
	return b, nil
}

// All returns every question in bank order.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// ByTier returns the questions of tier t in bank order.
func (b *Bank) ByTier(t Tier) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Tier == t {
			out = append(out, q)
		}
	}
	return out
}

// ByCategoryAndTier returns the questions of category c and tier t in
// bank order.
func (b *Bank) ByCategoryAndTier(c Category, t Tier) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Category == c && q.Tier == t {
			out = append(out, q)
		}
	}
	return out
}

// Filter returns the questions matching an optional tier and category,
// each given by name as ParseTier and ParseCategory accept them. Empty
// filters match everything. The result is never nil.
func (b *Bank) Filter(tier, category string) ([]Question, error) {
	var (
		t   Tier
		c   Category
		err error
	)
	if tier != "" {
		if t, err = ParseTier(tier); err != nil {
			return nil, err
		}
	}
	if category != "" {
		if c, err = ParseCategory(category); err != nil {
			return nil, err
		}
	}

	out := []Question{}
	for _, q := range b.questions {
		if tier != "" && q.Tier != t {
			continue
		}
		if category != "" && q.Category != c {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// Lookup returns the question with the given id.
func (b *Bank) Lookup(id string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
)

// Default returns the built-in bank: one core question per category in
// declaration order followed by two follow-ups per deviation category.
func Default() *Bank {
	defaultOnce.Do(func() {
		b, err := NewBank(defaultQuestions)
		if err != nil {
			panic(fmt.Sprintf("questionnaire: built-in bank is invalid: %v", err))
		}
		defaultBank = b
	})
	return defaultBank
}

var defaultQuestions = []Question{
	{ID: "core-balanced", Text: "Do you feel full of energy?", Category: Balanced, Tier: TierCore},
	{ID: "core-qi-deficiency", Text: "Do you tire easily?", Category: QiDeficiency, Tier: TierCore},
	{ID: "core-yang-deficiency", Text: "Do your hands and feet feel cold?", Category: YangDeficiency, Tier: TierCore},
	{ID: "core-yin-deficiency", Text: "Do your palms and soles feel hot?", Category: YinDeficiency, Tier: TierCore},
	{ID: "core-phlegm-dampness", Text: "Does your body feel heavy or sluggish?", Category: PhlegmDampness, Tier: TierCore},
	{ID: "core-damp-heat", Text: "Is your face or the tip of your nose oily?", Category: DampHeat, Tier: TierCore},
	{ID: "core-blood-stasis", Text: "Do bruises appear on your skin without an obvious cause?", Category: BloodStasis, Tier: TierCore},
	{ID: "core-qi-stagnation", Text: "Do you feel low or gloomy?", Category: QiStagnation, Tier: TierCore},
	{ID: "core-special-diathesis", Text: "Do you sneeze even when you do not have a cold?", Category: SpecialDiathesis, Tier: TierCore},

	{ID: "qi-deficiency-breath", Text: "Do you get short of breath easily?", Category: QiDeficiency, Tier: TierFollowUp},
	{ID: "qi-deficiency-sweat", Text: "Do you sweat easily after only slight exertion?", Category: QiDeficiency, Tier: TierFollowUp},
	{ID: "yang-deficiency-chill", Text: "Do you feel the cold more than the people around you?", Category: YangDeficiency, Tier: TierFollowUp},
	{ID: "yang-deficiency-cold-food", Text: "Does eating or drinking something cold upset your stomach?", Category: YangDeficiency, Tier: TierFollowUp},
	{ID: "yin-deficiency-dry-mouth", Text: "Do your mouth and throat feel dry?", Category: YinDeficiency, Tier: TierFollowUp},
	{ID: "yin-deficiency-red-lips", Text: "Are your lips redder than most people's?", Category: YinDeficiency, Tier: TierFollowUp},
	{ID: "phlegm-dampness-abdomen", Text: "Is your abdomen soft and bulging?", Category: PhlegmDampness, Tier: TierFollowUp},
	{ID: "phlegm-dampness-sticky-mouth", Text: "Does your mouth feel sticky or greasy?", Category: PhlegmDampness, Tier: TierFollowUp},
	{ID: "damp-heat-bitter-mouth", Text: "Do you notice a bitter taste or odour in your mouth?", Category: DampHeat, Tier: TierFollowUp},
	{ID: "damp-heat-acne", Text: "Do you break out in acne or boils easily?", Category: DampHeat, Tier: TierFollowUp},
	{ID: "blood-stasis-dark-circles", Text: "Do you have dark circles under your eyes?", Category: BloodStasis, Tier: TierFollowUp},
	{ID: "blood-stasis-complexion", Text: "Is your complexion dull or darkish?", Category: BloodStasis, Tier: TierFollowUp},
	{ID: "qi-stagnation-anxious", Text: "Do you become nervous or anxious easily?", Category: QiStagnation, Tier: TierFollowUp},
	{ID: "qi-stagnation-sigh", Text: "Do you sigh for no particular reason?", Category: QiStagnation, Tier: TierFollowUp},
	{ID: "special-diathesis-allergy", Text: "Are you allergic to medicines, foods, odours or pollen?", Category: SpecialDiathesis, Tier: TierFollowUp},
	{ID: "special-diathesis-hives", Text: "Do you come out in hives easily?", Category: SpecialDiathesis, Tier: TierFollowUp},
}
