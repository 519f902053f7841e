package types

import "time"

// ChatMessage is the turn shape the browser pages post to the stateless chat
// route.
type ChatMessage struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"` // "user" | "ai"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn converts the wire message into a transcript turn.
func (m ChatMessage) Turn() Turn {
	author := AuthorAssistant
	if m.Type == "user" {
		author = AuthorUser
	}
	return Turn{ID: m.ID, Author: author, Text: m.Content, CreatedAt: m.Timestamp}
}

type ChatRequest struct {
	Messages  []ChatMessage `json:"messages"`
	UserInput string        `json:"userInput"`
	Context   string        `json:"context,omitempty"`
}

type ChatResponse struct {
	Response     string `json:"response,omitempty"`
	ErrorMessage string `json:"error,omitempty"` // only set on failure
}

type LessonPlanRequest struct {
	Subject      string   `json:"subject"`
	Grade        string   `json:"grade"`
	Topic        string   `json:"topic"`
	Duration     string   `json:"duration,omitempty"`
	Competencies []string `json:"competencies,omitempty"`
}

type AttachmentsResponse struct {
	Success     bool         `json:"success"`
	Attachments []Attachment `json:"attachments"`
	Rejected    []string     `json:"rejected,omitempty"`
}
