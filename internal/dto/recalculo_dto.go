package dto

type RecalcularRequest struct {
	// Email receives the budget summary PDF once the recalculation finishes.
	Email *string `json:"email" validate:"omitempty,email"`
}

type RecalculoAgendadoResponse struct {
	RevisaoID string `json:"revisao_id"`
	Status    string `json:"status"`
}
