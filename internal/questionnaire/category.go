package questionnaire

import (
	"fmt"
	"strings"
)

// Category is one of the nine constitution types of the classification
// standard. Declaration order is significant: it is the order scores are
// reported in and the tie-break order of ResolvePrimary.
type Category int

const (
	Balanced Category = iota
	QiDeficiency
	YangDeficiency
	YinDeficiency
	PhlegmDampness
	DampHeat
	BloodStasis
	QiStagnation
	SpecialDiathesis

	numCategories = int(SpecialDiathesis) + 1
)

var categoryNames = [numCategories]string{
	"balanced",
	"qi_deficiency",
	"yang_deficiency",
	"yin_deficiency",
	"phlegm_dampness",
	"damp_heat",
	"blood_stasis",
	"qi_stagnation",
	"special_diathesis",
}

var categoryLabels = [numCategories]string{
	"平和质",
	"气虚质",
	"阳虚质",
	"阴虚质",
	"痰湿质",
	"湿热质",
	"血瘀质",
	"气郁质",
	"特秉质",
}

// Categories returns all categories in declaration order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is a declared category.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < numCategories
}

// IsNeutral reports whether c is the balanced constitution. Every other
// category is a deviation.
func (c Category) IsNeutral() bool {
	return c == Balanced
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Label returns the standard's Chinese name for c.
func (c Category) Label() string {
	if !c.Valid() {
		return c.String()
	}
	return categoryLabels[c]
}

// ParseCategory accepts the text form ("damp_heat") or the Chinese label
// ("湿热质").
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	norm := strings.ReplaceAll(strings.ToLower(s), "-", "_")
	for i := 0; i < numCategories; i++ {
		if categoryNames[i] == norm || categoryLabels[i] == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown constitution category %q", s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
