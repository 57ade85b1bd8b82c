package prompt

import "testing"

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		message  string
		expected string
	}{
		{
			name:     "context and message are placed in the template",
			context:  "C",
			message:  "hello",
			expected: "API Documentation:\nC\n\nUser: hello\nAI:",
		},
		{
			name:     "empty context leaves an empty segment",
			context:  "",
			message:  "hello",
			expected: "API Documentation:\n\n\nUser: hello\nAI:",
		},
		{
			name:     "multi-line context is included verbatim",
			context:  "line 1\nline 2",
			message:  "what is line 2?",
			expected: "API Documentation:\nline 1\nline 2\n\nUser: what is line 2?\nAI:",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := Build(test.context, test.message)
			if actual != test.expected {
				t.Errorf("expected %q, got %q", test.expected, actual)
			}
		})
	}
}
