package model

// ErrorResponse is the body of every REST error.
type ErrorResponse struct {
	Error     string         `json:"error"`
	Candidate *CityCandidate `json:"candidate,omitempty"`
}

// MessageResponse is the body of accepted asynchronous requests.
type MessageResponse struct {
	Message string `json:"message"`
}
