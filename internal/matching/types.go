package matching

// ResumeProfile is the scorable projection of a resume.
type ResumeProfile struct {
	ID              string
	Position        string
	City            string
	ReadyToRelocate bool
	DesiredSalary   *int64
	Skills          []string
	ExperienceYears *float64
}

// VacancyProfile is the scorable projection of a vacancy.
type VacancyProfile struct {
	ID                 string
	Position           string
	City               string
	SalaryMin          *int64
	SalaryMax          *int64
	RequiredSkills     []string
	RequiredExperience string
}

// MatchDetails breaks a score down by dimension. A false value means either
// "did not match" or "dimension not comparable"; Score accounts for the
// difference.
type MatchDetails struct {
	PositionMatch        bool     `json:"positionMatch"`
	LocationMatch        bool     `json:"locationMatch"`
	SalaryCompatible     bool     `json:"salaryCompatible"`
	ExperienceSufficient bool     `json:"experienceSufficient"`
	SkillsMatched        []string `json:"skillsMatched"`
}

// Recommendation is a scored candidate. Never persisted; recomputed on demand.
type Recommendation struct {
	ID      string       `json:"id"`
	Score   float64      `json:"score"`
	Details MatchDetails `json:"matchDetails"`
}
