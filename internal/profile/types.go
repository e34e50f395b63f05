package profile

// Gender of the respondent. Advice differs by gender.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Respondent is the background collected before the questionnaire: who is
// answering and where they live. None of it affects scoring; it shapes the
// advice attached to a result.
type Respondent struct {
	Gender   Gender `json:"gender"`
	Age      int    `json:"age"`
	Province string `json:"province"`
	City     string `json:"city,omitempty"`
	Climate  string `json:"climate,omitempty"` // e.g. "温暖湿润"; derived from Province when empty
}
