package update_appointment_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	Message string `json:"message"`
}
