package resumes

import (
	"time"

	"horeca-jobs-backend/internal/matching"
)

// Status is the resume lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// SalaryType distinguishes gross and net salary expectations.
type SalaryType string

const (
	SalaryGross SalaryType = "gross"
	SalaryNet   SalaryType = "net"
)

// WorkExperience is one entry of the ordered employment history.
type WorkExperience struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Start    string `json:"start"`
	End      string `json:"end,omitempty"`
}

// Resume is an applicant's listing.
type Resume struct {
	ID                   string           `json:"id"`
	OwnerID              int64            `json:"ownerId"`
	Position             string           `json:"position"`
	DesiredSalary        *int64           `json:"desiredSalary,omitempty"`
	SalaryType           SalaryType       `json:"salaryType,omitempty"`
	City                 string           `json:"city,omitempty"`
	ReadyToRelocate      bool             `json:"readyToRelocate"`
	Skills               []string         `json:"skills,omitempty"`
	Experience           []WorkExperience `json:"experience,omitempty"`
	Education            []string         `json:"education,omitempty"`
	Languages            []string         `json:"languages,omitempty"`
	TotalExperienceYears *float64         `json:"totalExperienceYears,omitempty"`
	Status               Status           `json:"status"`
	ViewsCount           int64            `json:"viewsCount"`
	ResponsesCount       int64            `json:"responsesCount"`
	CreatedAt            time.Time        `json:"createdAt"`
	PublishedAt          *time.Time       `json:"publishedAt,omitempty"`
}

// Profile projects the resume into its scorable form.
func (r Resume) Profile() matching.ResumeProfile {
	return matching.ResumeProfile{
		ID:              r.ID,
		Position:        r.Position,
		City:            r.City,
		ReadyToRelocate: r.ReadyToRelocate,
		DesiredSalary:   r.DesiredSalary,
		Skills:          r.Skills,
		ExperienceYears: r.TotalExperienceYears,
	}
}

// Complete reports whether the resume may leave the draft state.
func (r Resume) Complete() bool {
	return r.Position != "" && r.City != ""
}

// canTransition encodes the resume state machine:
// draft -> published <-> archived.
func canTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusPublished
	case StatusPublished:
		return to == StatusArchived
	case StatusArchived:
		return to == StatusPublished
	default:
		return false
	}
}
