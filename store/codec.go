package store

import (
	"bytes"
	"clementus360/edu-copilot/types"
	"encoding/json"
	"fmt"
	"time"
)

// Persisted documents are decoded through these loose shapes so that
// timestamps written as epoch milliseconds, and collections exported from the
// browser build (type/content/timestamp/messages), rehydrate too.

type wireAttachment struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	Type          string `json:"type"`
	SizeBytes     int64  `json:"sizeBytes"`
	Size          int64  `json:"size"`
	ExtractedText string `json:"extractedText"`
	Content       string `json:"content"`
}

type wireTurn struct {
	ID          int64            `json:"id"`
	Author      string           `json:"author"`
	Type        string           `json:"type"`
	Text        string           `json:"text"`
	Content     string           `json:"content"`
	CreatedAt   json.RawMessage  `json:"createdAt"`
	Timestamp   json.RawMessage  `json:"timestamp"`
	Attachments []wireAttachment `json:"attachments"`
	Files       []wireAttachment `json:"files"`
}

type wireSession struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	LastPreview string          `json:"lastPreview"`
	LastMessage string          `json:"lastMessage"`
	UpdatedAt   json.RawMessage `json:"updatedAt"`
	Timestamp   json.RawMessage `json:"timestamp"`
	IsActive    bool            `json:"isActive"`
	Turns       []wireTurn      `json:"turns"`
	Messages    []wireTurn      `json:"messages"`
}

func encodeCollection(sessions []types.Session) ([]byte, error) {
	return json.Marshal(sessions)
}

func decodeCollection(doc []byte) ([]types.Session, error) {
	var wire []wireSession
	if err := json.Unmarshal(doc, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode session collection: %w", err)
	}

	sessions := make([]types.Session, 0, len(wire))
	for _, ws := range wire {
		updatedAt, err := parseTimestamp(firstRaw(ws.UpdatedAt, ws.Timestamp))
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", ws.ID, err)
		}

		rawTurns := ws.Turns
		if rawTurns == nil {
			rawTurns = ws.Messages
		}
		turns := make([]types.Turn, 0, len(rawTurns))
		for _, wt := range rawTurns {
			turn, err := wt.turn()
			if err != nil {
				return nil, fmt.Errorf("session %s: %w", ws.ID, err)
			}
			turns = append(turns, turn)
		}

		sessions = append(sessions, types.Session{
			ID:          ws.ID,
			Title:       ws.Title,
			LastPreview: firstString(ws.LastPreview, ws.LastMessage),
			UpdatedAt:   updatedAt,
			IsActive:    ws.IsActive,
			Turns:       turns,
		})
	}
	return sessions, nil
}

func (wt wireTurn) turn() (types.Turn, error) {
	createdAt, err := parseTimestamp(firstRaw(wt.CreatedAt, wt.Timestamp))
	if err != nil {
		return types.Turn{}, fmt.Errorf("turn %d: %w", wt.ID, err)
	}

	author := types.AuthorAssistant
	if wt.Author == string(types.AuthorUser) || wt.Type == "user" {
		author = types.AuthorUser
	}

	rawAtts := wt.Attachments
	if rawAtts == nil {
		rawAtts = wt.Files
	}
	var atts []types.Attachment
	for _, wa := range rawAtts {
		atts = append(atts, wa.attachment())
	}

	return types.Turn{
		ID:          wt.ID,
		Author:      author,
		Text:        firstString(wt.Text, wt.Content),
		CreatedAt:   createdAt,
		Attachments: atts,
	}, nil
}

func (wa wireAttachment) attachment() types.Attachment {
	kind := types.AttachmentKind(wa.Kind)
	if kind == "" {
		kind = types.AttachmentDocument
		if wa.Type == "csv" {
			kind = types.AttachmentTabular
		}
	}
	size := wa.SizeBytes
	if size == 0 {
		size = wa.Size
	}
	return types.Attachment{
		ID:            wa.ID,
		Filename:      firstString(wa.Filename, wa.Name),
		Kind:          kind,
		SizeBytes:     size,
		ExtractedText: firstString(wa.ExtractedText, wa.Content),
	}
}

// parseTimestamp accepts RFC 3339 strings, epoch milliseconds and null.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %s: %w", raw, err)
		}
		if s == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		return t, nil
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %s: %w", raw, err)
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

func firstRaw(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if len(bytes.TrimSpace(v)) > 0 {
			return v
		}
	}
	return nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
