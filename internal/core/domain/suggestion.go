package domain

import "strings"

// Suggestion is free-text feedback. Name and Email are optional and are
// stored as empty strings when left blank.
type Suggestion struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// NewSuggestion trims every field and rejects an empty message.
func NewSuggestion(name, email, message string) (*Suggestion, error) {
	s := &Suggestion{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}
	if s.Message == "" {
		return nil, ErrEmptyMessage
	}
	return s, nil
}
