package model

// GrantRecord is the immutable grant input. It may come from a catalog entry
// or from an ephemeral scrape; the engine treats both the same way.
type GrantRecord struct {
	Name                    string             `json:"name" yaml:"name"`
	Description             string             `json:"description" yaml:"description"`
	Mission                 string             `json:"mission" yaml:"mission"`
	Deadline                string             `json:"deadline" yaml:"deadline"`
	DecisionDate            string             `json:"decision_date" yaml:"decision_date"`
	AwardAmount             string             `json:"award_amount" yaml:"award_amount"`
	AwardStructure          string             `json:"award_structure" yaml:"award_structure"`
	Eligibility             string             `json:"eligibility" yaml:"eligibility"`
	PreferredApplicants     string             `json:"preferred_applicants" yaml:"preferred_applicants"`
	ApplicationRequirements []string           `json:"application_requirements" yaml:"application_requirements"`
	ReportingRequirements   string             `json:"reporting_requirements" yaml:"reporting_requirements"`
	Restrictions            []string           `json:"restrictions" yaml:"restrictions"`
	RecipientPatterns       *RecipientPatterns `json:"recipient_patterns,omitempty" yaml:"recipient_patterns,omitempty"`
}

// RecipientPatterns is the optional structured bag describing past awards.
type RecipientPatterns struct {
	Recipients       []Recipient       `json:"recipients" yaml:"recipients"`
	CompetitionStats *CompetitionStats `json:"competition_stats,omitempty" yaml:"competition_stats,omitempty"`
}

// Recipient is one past-award record in the recipient corpus.
type Recipient struct {
	CareerStage      string `json:"career_stage" yaml:"career_stage"`
	OrganizationType string `json:"organization_type" yaml:"organization_type"`
	Country          string `json:"country" yaml:"country"`
	EducationLevel   string `json:"education_level" yaml:"education_level"`
	Year             int    `json:"year" yaml:"year"`
}

// Identifying reports whether the record carries any attribute that tells a
// reader who won.
func (r Recipient) Identifying() bool {
	return r.CareerStage != "" || r.OrganizationType != "" || r.Country != "" ||
		r.EducationLevel != "" || r.Year > 0
}

// CompetitionStats holds aggregate competition figures. AcceptanceRate is a
// percentage (0-100).
type CompetitionStats struct {
	ApplicationsReceived *int     `json:"applications_received,omitempty" yaml:"applications_received,omitempty"`
	AwardsMade           *int     `json:"awards_made,omitempty" yaml:"awards_made,omitempty"`
	AcceptanceRate       *float64 `json:"acceptance_rate,omitempty" yaml:"acceptance_rate,omitempty"`
	Source               string   `json:"source" yaml:"source"`
	Confidence           string   `json:"confidence" yaml:"confidence"`
}

// Recipients returns the recipient corpus, or nil when none was supplied.
func (g GrantRecord) Recipients() []Recipient {
	if g.RecipientPatterns == nil {
		return nil
	}
	return g.RecipientPatterns.Recipients
}

// Competition returns the aggregate competition stats, or nil.
func (g GrantRecord) Competition() *CompetitionStats {
	if g.RecipientPatterns == nil {
		return nil
	}
	return g.RecipientPatterns.CompetitionStats
}
