package complaints

import "time"

// TargetType names the kind of entity a complaint points at.
type TargetType string

const (
	TargetResume  TargetType = "resume"
	TargetVacancy TargetType = "vacancy"
)

func (t TargetType) Valid() bool {
	return t == TargetResume || t == TargetVacancy
}

// Complaint is a report filed by a user against a resume or vacancy.
type Complaint struct {
	ID         string     `json:"id"`
	ReporterID int64      `json:"reporterId"`
	TargetType TargetType `json:"targetType"`
	TargetID   string     `json:"targetId"`
	Reason     string     `json:"reason"`
	CreatedAt  time.Time  `json:"createdAt"`
}
