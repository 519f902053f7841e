package types

import "time"

type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

type AttachmentKind string

const (
	AttachmentTabular  AttachmentKind = "tabular"
	AttachmentDocument AttachmentKind = "document"
)

// Turn is one message of a transcript. Turns are appended, never edited.
type Turn struct {
	ID          int64        `json:"id"`
	Author      Author       `json:"author"`
	Text        string       `json:"text"`
	CreatedAt   time.Time    `json:"createdAt"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Attachment struct {
	ID            string         `json:"id"`
	Filename      string         `json:"filename"`
	Kind          AttachmentKind `json:"kind"`
	SizeBytes     int64          `json:"sizeBytes"`
	ExtractedText string         `json:"extractedText,omitempty"`
}
