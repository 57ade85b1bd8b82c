package doccontext

import "sync/atomic"

// Store holds the text of the most recently fetched document. It is shared by
// every request: writes replace the whole value, readers always see either the
// old or the new text.
type Store struct {
	text atomic.Pointer[string]
}

func New() *Store {
	return &Store{}
}

// Load returns the current text, or an empty string if nothing has been stored.
func (s *Store) Load() string {
	if p := s.text.Load(); p != nil {
		return *p
	}
	return ""
}

func (s *Store) Store(text string) {
	s.text.Store(&text)
}
