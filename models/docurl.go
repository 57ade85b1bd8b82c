package models

type DocURLPostRequest struct {
	URL string `json:"url"`
}

type DocURLStatus string

const (
	DocURLStatusSuccess DocURLStatus = "success"
	DocURLStatusError   DocURLStatus = "error"
)

type DocURLPostResponse struct {
	Status  DocURLStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}
