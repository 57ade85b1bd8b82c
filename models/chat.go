package models

type ChatPostRequest struct {
	Message string `json:"message"`

	// History of previous turns, e.g. {"user": "..."} or {"ai": "..."}.
	// Accepted for compatibility with existing clients, but not used to
	// build the prompt.
	History []map[string]any `json:"history,omitempty"`
}

type ChatPostResponse struct {
	Response string `json:"response"`
}

// ChatErrorResponse is the text returned in place of a model reply when the
// model could not be reached.
func ChatErrorResponse(err error) string {
	return "[Error from Ollama: " + err.Error() + "]"
}
