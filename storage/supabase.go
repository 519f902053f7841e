package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/supabase-community/supabase-go"
)

const supabaseTable = "session_documents"

// Supabase implements Backend on a PostgREST table with the same layout as
// the SQLite one.
type Supabase struct {
	client *supabase.Client
}

type documentRow struct {
	StorageKey string    `json:"storage_key"`
	Document   string    `json:"document"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewSupabase(apiURL, apiKey string) (*Supabase, error) {
	client, err := supabase.NewClient(apiURL, apiKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, goerr.Wrap(err, "create supabase client", goerr.V("url", apiURL))
	}
	return &Supabase{client: client}, nil
}

// The postgrest client has no context support; ctx is accepted for the
// interface only.

func (s *Supabase) Get(_ context.Context, key string) ([]byte, bool, error) {
	resp, _, err := s.client.From(supabaseTable).
		Select("storage_key, document", "", false).
		Eq("storage_key", key).
		Execute()
	if err != nil {
		return nil, false, goerr.Wrap(err, "select document", goerr.V("key", key))
	}

	var rows []documentRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, false, goerr.Wrap(err, "decode document rows", goerr.V("key", key))
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return []byte(rows[0].Document), true, nil
}

func (s *Supabase) Put(_ context.Context, key string, doc []byte) error {
	row := documentRow{StorageKey: key, Document: string(doc), UpdatedAt: time.Now().UTC()}
	if _, _, err := s.client.From(supabaseTable).Upsert(row, "storage_key", "", "").Execute(); err != nil {
		return goerr.Wrap(err, "upsert document", goerr.V("key", key))
	}
	return nil
}

func (s *Supabase) Delete(_ context.Context, key string) error {
	if _, _, err := s.client.From(supabaseTable).Delete("", "").Eq("storage_key", key).Execute(); err != nil {
		return goerr.Wrap(err, "delete document", goerr.V("key", key))
	}
	return nil
}

func (s *Supabase) Close() error { return nil }
