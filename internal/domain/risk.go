package domain

// Level is an ordered, scale-specific risk level. Higher values are more
// severe.
type Level interface {
	~int
	String() string
}

// Finding is one tagged piece of evidence behind an assessment.
type Finding struct {
	Tag    string    `json:"tag"`
	Value  float64   `json:"value"`
	Weight float64   `json:"weight"`
	Detail string    `json:"detail,omitempty"`
	Time   *TimeSlot `json:"time,omitempty"`
}

// TimeSlot identifies the sample hour a finding refers to.
type TimeSlot struct {
	Hour string `json:"hour"` // local "15:04"
	Date string `json:"date"` // local "2006-01-02"
}

// RiskAssessment is the result of one hazard evaluation. It is produced fresh
// on every call and never mutated afterwards.
type RiskAssessment[L Level] struct {
	Level    L         `json:"level"`
	Evidence []Finding `json:"evidence"`
	Summary  string    `json:"summary"`
}

// AtLeast reports whether the assessment reached min.
func (r RiskAssessment[L]) AtLeast(min L) bool {
	return r.Level >= min
}

// Finding returns the first finding tagged tag.
func (r RiskAssessment[L]) Finding(tag string) (Finding, bool) {
	for _, f := range r.Evidence {
		if f.Tag == tag {
			return f, true
		}
	}
	return Finding{}, false
}
