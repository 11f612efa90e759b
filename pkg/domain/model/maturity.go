package model

import (
	"maps"
	"time"

	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

// MaturityScorecard is the single per-owner maturity checklist. Scores hold the
// values as entered (0-10); unparseable values count as 0.
type MaturityScorecard struct {
	OwnerID              OwnerID                            `json:"ownerId"`
	Scores               map[types.MaturityDimension]string `json:"scores"`
	OverallMaturityScore float64                            `json:"overallMaturityScore"`
	CreatedAt            time.Time                          `json:"createdAt"`
	UpdatedAt            time.Time                          `json:"updatedAt"`
}

// Clone returns a deep copy of the scorecard
func (m *MaturityScorecard) Clone() *MaturityScorecard {
	if m == nil {
		return nil
	}
	c := *m
	c.Scores = make(map[types.MaturityDimension]string, len(m.Scores))
	maps.Copy(c.Scores, m.Scores)
	return &c
}
