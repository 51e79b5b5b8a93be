package entity

import "time"

// Lead is a completed quote request handed to the sales team.
type Lead struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Name        string    `json:"nome_usuario" db:"name"`
	Age         string    `json:"idade" db:"age"`
	City        string    `json:"cidade_cotacao" db:"city"`
	Dependents  string    `json:"tem_dependentes" db:"has_dependents"`
	Details     string    `json:"info_dependentes" db:"dependent_details"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
}

func NewLead(id string, session UserSession, completedAt time.Time) Lead {
	data := session.CollectedQuoteData
	return Lead{
		ID:          id,
		UserID:      session.UserID,
		Name:        data.Name,
		Age:         data.Age,
		City:        data.City,
		Dependents:  data.HasDependents.String(),
		Details:     data.DependentDetails,
		CompletedAt: completedAt,
	}
}
