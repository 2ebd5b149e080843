package dto

// ErrorResponse corps d'erreur HTTP. Toujours success=false.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Error construit un ErrorResponse.
func Error(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}

// MessageResponse réponse de succès sans payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
