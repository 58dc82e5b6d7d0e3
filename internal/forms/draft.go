package forms

import "time"

// EntityType names the kind of entity a draft will become.
type EntityType string

const (
	EntityResume  EntityType = "resume"
	EntityVacancy EntityType = "vacancy"
)

// Draft holds the partial field map collected so far for one owner.
// One draft per (owner, entity type); a new creation attempt resumes or
// overwrites it, last writer wins.
type Draft struct {
	OwnerID    int64             `json:"ownerId"`
	EntityType EntityType        `json:"entityType"`
	Fields     map[string]string `json:"fields"`
	StepIndex  int               `json:"stepIndex"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func newDraft(ownerID int64, entityType EntityType) Draft {
	return Draft{
		OwnerID:    ownerID,
		EntityType: entityType,
		Fields:     map[string]string{},
	}
}

// Field returns the stored value for a step key, empty when unset.
func (d Draft) Field(key string) string {
	return d.Fields[key]
}
