package responses

import "time"

// Status is the response lifecycle state. Transitions are one-directional;
// accepted and rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusViewed   Status = "viewed"
	StatusInvited  Status = "invited"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Response links one resume to one vacancy: an application when the
// applicant initiates it, an invitation when the employer does.
type Response struct {
	ID           string    `json:"id"`
	ResumeID     string    `json:"resumeId"`
	VacancyID    string    `json:"vacancyId"`
	Status       Status    `json:"status"`
	IsInvitation bool      `json:"isInvitation"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// canTransition encodes the response state machine. There are no backward
// edges; employer actions only move the status forward.
func canTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusViewed || to == StatusInvited || to == StatusAccepted || to == StatusRejected
	case StatusViewed:
		return to == StatusInvited || to == StatusAccepted || to == StatusRejected
	case StatusInvited:
		return to == StatusAccepted || to == StatusRejected
	case StatusAccepted, StatusRejected:
		return false
	default:
		return false
	}
}
