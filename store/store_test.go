package store

import (
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/storage"
	"clementus360/edu-copilot/types"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "teacher-chats:ana"

// steppingClock advances one second per call.
func steppingClock() func() time.Time {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func testOptions() Options {
	opts := OptionsFor(config.Surfaces["teacher"])
	opts.Clock = steppingClock()
	return opts
}

func openStore(t *testing.T, backend storage.Backend) *SessionStore {
	t.Helper()
	st, err := Open(context.Background(), backend, testKey, testOptions())
	require.NoError(t, err)
	return st
}

func activeCount(sessions []types.Session) int {
	n := 0
	for _, s := range sessions {
		if s.IsActive {
			n++
		}
	}
	return n
}

func TestOpenMissingKey(t *testing.T) {
	st := openStore(t, storage.NewMemory())

	assert.Empty(t, st.Sessions())
	assert.Equal(t, "", st.ActiveID())
	_, ok := st.Active()
	assert.False(t, ok)
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	st := openStore(t, backend)

	first, err := st.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Nova Conversa", first.Title)
	assert.True(t, first.IsActive)
	require.Len(t, first.Turns, 1)
	assert.Equal(t, types.AuthorAssistant, first.Turns[0].Author)
	assert.Equal(t, config.Surfaces["teacher"].Welcome, first.Turns[0].Text)
	assert.True(t, strings.HasSuffix(first.LastPreview, "..."))

	second, err := st.CreateSession(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	sessions := st.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, second.ID, sessions[0].ID, "newest session first")
	assert.Equal(t, second.ID, st.ActiveID())
	assert.Equal(t, 1, activeCount(sessions))

	_, found, err := backend.Get(ctx, testKey)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestSwitchActive(t *testing.T) {
	ctx := context.Background()
	st := openStore(t, storage.NewMemory())

	a, err := st.CreateSession(ctx)
	require.NoError(t, err)
	b, err := st.CreateSession(ctx)
	require.NoError(t, err)
	require.Equal(t, b.ID, st.ActiveID())

	require.NoError(t, st.SwitchActive(ctx, a.ID))
	assert.Equal(t, a.ID, st.ActiveID())
	assert.Equal(t, 1, activeCount(st.Sessions()))

	require.NoError(t, st.SwitchActive(ctx, "does-not-exist"))
	assert.Equal(t, a.ID, st.ActiveID())
	assert.Equal(t, 1, activeCount(st.Sessions()))
}

func TestAppendTurnTitleAndPreview(t *testing.T) {
	ctx := context.Background()
	st := openStore(t, storage.NewMemory())

	sess, err := st.CreateSession(ctx)
	require.NoError(t, err)

	long := "Como posso ensinar frações para alunos do sexto ano de forma lúdica e divertida?"
	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorUser, long, nil)))

	got, ok := st.Session(sess.ID)
	require.True(t, ok)
	assert.Equal(t, "Como posso ensinar frações para...", got.Title)
	assert.Equal(t, "Como posso ensinar frações para alunos do sexto an...", got.LastPreview)
	assert.True(t, got.UpdatedAt.After(sess.UpdatedAt))

	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorAssistant, "Use pizzas!", nil)))
	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorUser, "Outra pergunta", nil)))

	got, _ = st.Session(sess.ID)
	assert.Equal(t, "Como posso ensinar frações para...", got.Title, "title comes from the first user turn only")
	assert.Equal(t, "Outra pergunta", got.LastPreview)
	require.Len(t, got.Turns, 4)
	for i := 1; i < len(got.Turns); i++ {
		assert.Greater(t, got.Turns[i].ID, got.Turns[i-1].ID)
	}
}

func TestAppendTurnShortTextIsUntouched(t *testing.T) {
	ctx := context.Background()
	st := openStore(t, storage.NewMemory())
	sess, err := st.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorUser, "Olá", nil)))

	got, _ := st.Session(sess.ID)
	assert.Equal(t, "Olá", got.Title)
	assert.Equal(t, "Olá", got.LastPreview)
}

func TestAppendTurnUnknownSession(t *testing.T) {
	st := openStore(t, storage.NewMemory())
	err := st.AppendTurn(context.Background(), "missing", st.NewTurn(types.AuthorUser, "x", nil))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAppendTurnLeavesEarlierTurnsUnchanged(t *testing.T) {
	ctx := context.Background()
	st := openStore(t, storage.NewMemory())
	sess, err := st.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorUser, "Explique fotossíntese", nil)))
	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorAssistant, "A fotossíntese é...", nil)))

	before, ok := st.Session(sess.ID)
	require.True(t, ok)

	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorUser, "E a respiração celular?", nil)))
	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorAssistant, "A respiração celular...", nil)))

	after, _ := st.Session(sess.ID)
	require.Len(t, after.Turns, len(before.Turns)+2)
	for i, turn := range before.Turns {
		assert.Equal(t, turn.ID, after.Turns[i].ID)
		assert.Equal(t, turn.Author, after.Turns[i].Author)
		assert.Equal(t, turn.Text, after.Turns[i].Text)
	}
}

func TestSessionAttachmentsAreIsolatedFromCallers(t *testing.T) {
	ctx := context.Background()
	st := openStore(t, storage.NewMemory())
	sess, err := st.CreateSession(ctx)
	require.NoError(t, err)

	attachments := []types.Attachment{{ID: "att-1", Filename: "notas.csv", Kind: types.AttachmentTabular, SizeBytes: 42}}
	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorUser, "Primeira", nil)))

	withFile := st.NewTurn(types.AuthorUser, "Analise as notas", nil)
	withFile.Attachments = attachments
	require.NoError(t, st.AppendTurn(ctx, sess.ID, withFile))
	attachments[0].ID = "changed-by-caller"

	before, _ := st.Session(sess.ID)
	require.Len(t, before.Turns[1].Attachments, 1)
	assert.Equal(t, "att-1", before.Turns[1].Attachments[0].ID)

	before.Turns[1].Attachments[0].ID = "changed-by-reader"
	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorAssistant, "Média 7,5", nil)))

	after, _ := st.Session(sess.ID)
	assert.Equal(t, "att-1", after.Turns[1].Attachments[0].ID)
	assert.Nil(t, after.Turns[0].Attachments)
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	st := openStore(t, backend)

	a, err := st.CreateSession(ctx)
	require.NoError(t, err)
	b, err := st.CreateSession(ctx)
	require.NoError(t, err)

	t.Run("unknown id", func(t *testing.T) {
		require.NoError(t, st.DeleteSession(ctx, "missing"))
		assert.Len(t, st.Sessions(), 2)
	})

	t.Run("active session", func(t *testing.T) {
		require.NoError(t, st.DeleteSession(ctx, b.ID))
		assert.Equal(t, a.ID, st.ActiveID())
		assert.Equal(t, 1, activeCount(st.Sessions()))
	})

	t.Run("last session removes the key", func(t *testing.T) {
		require.NoError(t, st.DeleteSession(ctx, a.ID))
		assert.Empty(t, st.Sessions())
		assert.Equal(t, "", st.ActiveID())

		_, found, err := backend.Get(ctx, testKey)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestDeleteInactiveSessionKeepsActive(t *testing.T) {
	ctx := context.Background()
	st := openStore(t, storage.NewMemory())

	a, err := st.CreateSession(ctx)
	require.NoError(t, err)
	b, err := st.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, st.DeleteSession(ctx, a.ID))
	assert.Equal(t, b.ID, st.ActiveID())
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	st := openStore(t, backend)

	sess, err := st.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorUser, "Olá", []types.Attachment{{
		ID: "att-1", Filename: "notas.csv", Kind: types.AttachmentTabular, SizeBytes: 42, ExtractedText: "resumo",
	}})))
	require.NoError(t, st.AppendTurn(ctx, sess.ID, st.NewTurn(types.AuthorAssistant, "Oi!", nil)))
	other, err := st.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, st.SwitchActive(ctx, sess.ID))

	reopened := openStore(t, backend)

	assert.Equal(t, st.Sessions(), reopened.Sessions())
	assert.Equal(t, sess.ID, reopened.ActiveID())

	got, ok := reopened.Session(sess.ID)
	require.True(t, ok)
	assert.Equal(t, "Olá", got.Title)
	assert.Equal(t, "Oi!", got.LastPreview)
	require.Len(t, got.Turns, 3)
	assert.Equal(t, "notas.csv", got.Turns[1].Attachments[0].Filename)

	_, ok = reopened.Session(other.ID)
	assert.True(t, ok)
}

func TestOpenLegacyDocument(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	require.NoError(t, backend.Put(ctx, testKey, []byte(`[
	  {"id":"chat-1700000000000","title":"Plano de aula","lastMessage":"Claro!","timestamp":1700000005000,"isActive":false,
	   "messages":[
	     {"id":1700000000001,"type":"ai","content":"Olá, professor!","timestamp":1700000000001},
	     {"id":1700000000002,"type":"user","content":"Plano de aula","timestamp":"2023-11-14T22:13:20.002Z",
	      "files":[{"id":"file-1700000000002-0","name":"notas.csv","type":"csv","size":120,"content":"resumo"}]},
	     {"id":1700000000003,"type":"ai","content":"Claro!","timestamp":null}
	   ]},
	  {"id":"chat-1600000000000","title":"Outra","lastMessage":"","timestamp":1600000000000,"isActive":false,"messages":[]}
	]`)))

	st := openStore(t, backend)

	sessions := st.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "chat-1700000000000", st.ActiveID(), "first session is visible when none is active")
	assert.Equal(t, 1, activeCount(sessions))

	legacy := sessions[0]
	assert.Equal(t, "Claro!", legacy.LastPreview)
	assert.Equal(t, time.UnixMilli(1700000005000).UTC(), legacy.UpdatedAt)
	require.Len(t, legacy.Turns, 3)
	assert.Equal(t, types.AuthorAssistant, legacy.Turns[0].Author)
	assert.Equal(t, types.AuthorUser, legacy.Turns[1].Author)
	assert.Equal(t, time.UnixMilli(1700000000002).UTC(), legacy.Turns[1].CreatedAt)
	assert.True(t, legacy.Turns[2].CreatedAt.IsZero())

	att := legacy.Turns[1].Attachments[0]
	assert.Equal(t, "notas.csv", att.Filename)
	assert.Equal(t, types.AttachmentTabular, att.Kind)
	assert.EqualValues(t, 120, att.SizeBytes)

	next := st.NewTurn(types.AuthorUser, "mais", nil)
	assert.Greater(t, next.ID, int64(1700000000003))
}

func TestOpenCorruptDocument(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Put(context.Background(), testKey, []byte("not json")))

	_, err := Open(context.Background(), backend, testKey, testOptions())
	require.Error(t, err)
}

func TestPreviewCountsGraphemes(t *testing.T) {
	text := strings.Repeat("👍🏽", 50)
	assert.Equal(t, text, preview(text))

	longer := strings.Repeat("é", 51)
	assert.Equal(t, strings.Repeat("é", 50)+"...", preview(longer))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "um dois três quatro cinco", title("um dois três quatro cinco"))
	assert.Equal(t, "um dois três quatro cinco...", title("um  dois\ttrês quatro cinco seis"))
	assert.Equal(t, "", title("   "))
}
