package types

import "time"

type Session struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LastPreview string    `json:"lastPreview"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsActive    bool      `json:"isActive"`
	Turns       []Turn    `json:"turns"`
}

// HasUserTurn reports whether any turn of the session was written by the user.
func (s Session) HasUserTurn() bool {
	for _, t := range s.Turns {
		if t.Author == AuthorUser {
			return true
		}
	}
	return false
}

type SessionsResponse struct {
	Success  bool      `json:"success"`
	ActiveID string    `json:"activeId"`
	Sessions []Session `json:"sessions"`
}

type SessionResponse struct {
	Success bool    `json:"success"`
	Session Session `json:"session"`
}

type SendMessageRequest struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type SendMessageResponse struct {
	Success      bool    `json:"success"`
	Session      Session `json:"session"`
	Reply        *Turn   `json:"reply,omitempty"`
	Truncated    bool    `json:"truncated,omitempty"`
	ErrorMessage string  `json:"error,omitempty"`
}
