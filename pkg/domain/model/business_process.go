package model

import (
	"time"

	"github.com/google/uuid"
)

// BusinessProcessID is a UUID-based identifier for BusinessProcess
type BusinessProcessID string

// NewBusinessProcessID generates a new UUID v4 BusinessProcessID
func NewBusinessProcessID() BusinessProcessID {
	return BusinessProcessID(uuid.New().String())
}

func (id BusinessProcessID) String() string {
	return string(id)
}

// BusinessProcess is a business function whose continuity is being planned
type BusinessProcess struct {
	ID           BusinessProcessID `json:"id"`
	OwnerID      OwnerID           `json:"ownerId"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Owner        string            `json:"owner"`
	Dependencies Dependencies      `json:"dependencies"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Clone returns a deep copy of the business process
func (p *BusinessProcess) Clone() *BusinessProcess {
	if p == nil {
		return nil
	}
	c := *p
	c.Dependencies = p.Dependencies.Clone()
	return &c
}
