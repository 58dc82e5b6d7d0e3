package vacancies

import (
	"time"

	"horeca-jobs-backend/internal/matching"
)

// Status is the vacancy lifecycle state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusArchived Status = "archived"
	StatusClosed   Status = "closed"
)

// PublicationDurations are the selectable publication windows, in days.
var PublicationDurations = []int{7, 14, 30, 60, 90}

// Vacancy is an employer's listing.
type Vacancy struct {
	ID                      string     `json:"id"`
	OwnerID                 int64      `json:"ownerId"`
	Position                string     `json:"position"`
	PositionCategory        string     `json:"positionCategory"`
	SalaryMin               *int64     `json:"salaryMin,omitempty"`
	SalaryMax               *int64     `json:"salaryMax,omitempty"`
	City                    string     `json:"city,omitempty"`
	RequiredExperience      string     `json:"requiredExperience,omitempty"`
	RequiredEducation       string     `json:"requiredEducation,omitempty"`
	RequiredSkills          []string   `json:"requiredSkills,omitempty"`
	EmploymentType          string     `json:"employmentType,omitempty"`
	WorkSchedule            string     `json:"workSchedule,omitempty"`
	Description             string     `json:"description,omitempty"`
	Responsibilities        string     `json:"responsibilities,omitempty"`
	Cuisines                []string   `json:"cuisines,omitempty"`
	IsAnonymous             bool       `json:"isAnonymous"`
	PublicationDurationDays int        `json:"publicationDurationDays"`
	Status                  Status     `json:"status"`
	ViewsCount              int64      `json:"viewsCount"`
	ResponsesCount          int64      `json:"responsesCount"`
	CreatedAt               time.Time  `json:"createdAt"`
	PublishedAt             *time.Time `json:"publishedAt,omitempty"`
	ExpiresAt               *time.Time `json:"expiresAt,omitempty"`
}

// Profile projects the vacancy into its scorable form.
func (v Vacancy) Profile() matching.VacancyProfile {
	return matching.VacancyProfile{
		ID:                 v.ID,
		Position:           v.Position,
		City:               v.City,
		SalaryMin:          v.SalaryMin,
		SalaryMax:          v.SalaryMax,
		RequiredSkills:     v.RequiredSkills,
		RequiredExperience: v.RequiredExperience,
	}
}

// Complete reports whether the vacancy may leave the draft state.
func (v Vacancy) Complete() bool {
	return v.Position != "" && v.PositionCategory != "" && v.Description != ""
}

// ValidSalaryBand reports min <= max when both bounds are present.
func (v Vacancy) ValidSalaryBand() bool {
	if v.SalaryMin != nil && v.SalaryMax != nil {
		return *v.SalaryMin <= *v.SalaryMax
	}
	return true
}

// canTransition encodes the vacancy state machine:
// draft -> active <-> paused; active|paused -> archived -> active (restore);
// active|paused -> closed (terminal).
func canTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusActive
	case StatusActive:
		return to == StatusPaused || to == StatusArchived || to == StatusClosed
	case StatusPaused:
		return to == StatusActive || to == StatusArchived || to == StatusClosed
	case StatusArchived:
		return to == StatusActive
	case StatusClosed:
		return false
	default:
		return false
	}
}

// validDuration reports whether days is one of the selectable windows.
func validDuration(days int) bool {
	for _, d := range PublicationDurations {
		if d == days {
			return true
		}
	}
	return false
}
