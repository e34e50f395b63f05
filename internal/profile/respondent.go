package profile

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	minAge = 1
	maxAge = 120

	// maxFieldRunes caps free-text location fields.
	maxFieldRunes = 64
)

// Validate checks the respondent's fields and fills Climate from the
// province table when it is empty.
func (r *Respondent) Validate() error {
	r.Gender = Gender(strings.ToLower(strings.TrimSpace(string(r.Gender))))
	if r.Gender != Male && r.Gender != Female {
		return fmt.Errorf("gender must be %q or %q, got %q", Male, Female, r.Gender)
	}
	if r.Age < minAge || r.Age > maxAge {
		return fmt.Errorf("age must be between %d and %d, got %d", minAge, maxAge, r.Age)
	}

	r.Province = strings.TrimSpace(r.Province)
	r.City = strings.TrimSpace(r.City)
	r.Climate = strings.TrimSpace(r.Climate)
	if r.Province == "" {
		return fmt.Errorf("province is required")
	}
	for name, v := range map[string]string{"province": r.Province, "city": r.City, "climate": r.Climate} {
		if utf8.RuneCountInString(v) > maxFieldRunes {
			return fmt.Errorf("%s exceeds %d characters", name, maxFieldRunes)
		}
	}

	if r.Climate == "" {
		r.Climate = ClimateFor(r.Province)
	}
	return nil
}

// FromFields assembles a Respondent from flat key-value pairs as they
// arrive from CLI flags or tool arguments. Keys: gender, age, province,
// city, climate. The result is validated.
func FromFields(fields map[string]string) (Respondent, error) {
	var r Respondent
	r.Gender = Gender(fields["gender"])
	if v, ok := fields["age"]; ok && v != "" {
		age, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Respondent{}, fmt.Errorf("invalid age %q: %w", v, err)
		}
		r.Age = age
	}
	r.Province = fields["province"]
	r.City = fields["city"]
	r.Climate = fields["climate"]

	if err := r.Validate(); err != nil {
		return Respondent{}, err
	}
	return r, nil
}

// Summary returns a one-line description used in result headers.
func (r Respondent) Summary() string {
	var parts []string
	switch r.Gender {
	case Male:
		parts = append(parts, "男")
	case Female:
		parts = append(parts, "女")
	}
	if r.Age > 0 {
		parts = append(parts, fmt.Sprintf("%d岁", r.Age))
	}
	if loc := r.Province + r.City; loc != "" {
		parts = append(parts, loc)
	}
	if r.Climate != "" {
		parts = append(parts, r.Climate)
	}
	if len(parts) == 0 {
		return "未填写基础信息"
	}
	return strings.Join(parts, " · ")
}
