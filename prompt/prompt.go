package prompt

// Build returns the prompt sent to the model for a message, prefixed with the
// text of the current document.
func Build(docContext, message string) string {
	return "API Documentation:\n" + docContext + "\n\nUser: " + message + "\nAI:"
}
