package model

import "time"

// Pipeline stages, in board order. Won and lost are terminal.
const (
	StageNew         = "new"
	StageContacted   = "contacted"
	StageProposal    = "proposal"
	StageNegotiation = "negotiation"
	StageWon         = "won"
	StageLost        = "lost"
)

var PipelineStages = []string{StageNew, StageContacted, StageProposal, StageNegotiation, StageWon, StageLost}

func ValidStage(stage string) bool {
	for _, s := range PipelineStages {
		if s == stage {
			return true
		}
	}
	return false
}

type Lead struct {
	UUID        string    `json:"uuid"`
	Title       string    `json:"title"`
	ContactUUID string    `json:"contact_uuid,omitempty"`
	CompanyUUID string    `json:"company_uuid,omitempty"`
	Amount      float64   `json:"amount,omitempty"`
	Stage       string    `json:"stage"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
