package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

// RTORPOAnalysisID is a UUID-based identifier for RTORPOAnalysis
type RTORPOAnalysisID string

// NewRTORPOAnalysisID generates a new UUID v4 RTORPOAnalysisID
func NewRTORPOAnalysisID() RTORPOAnalysisID {
	return RTORPOAnalysisID(uuid.New().String())
}

// RTORPOKey is the natural key of an RTO/RPO analysis within one owner
type RTORPOKey struct {
	BusinessProcessID BusinessProcessID  `json:"businessProcessId"`
	Type              types.AnalysisType `json:"type"`
	Metric            types.Metric       `json:"metric"`
}

// RTORPOAnalysis compares the acceptable and achievable time of one objective
type RTORPOAnalysis struct {
	ID                RTORPOAnalysisID   `json:"id"`
	OwnerID           OwnerID            `json:"ownerId"`
	BusinessProcessID BusinessProcessID  `json:"businessProcessId"`
	Type              types.AnalysisType `json:"type"`
	Metric            types.Metric       `json:"metric"`
	AcceptableTime    float64            `json:"acceptableTime"`
	AchievableTime    float64            `json:"achievableTime"`
	// Gap is AcceptableTime - AchievableTime, persisted at write time
	Gap       float64   `json:"gap"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key returns the composite key of the analysis
func (a *RTORPOAnalysis) Key() RTORPOKey {
	return RTORPOKey{
		BusinessProcessID: a.BusinessProcessID,
		Type:              a.Type,
		Metric:            a.Metric,
	}
}

// Clone returns a copy of the analysis
func (a *RTORPOAnalysis) Clone() *RTORPOAnalysis {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
