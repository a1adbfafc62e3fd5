package repository

import (
	"path/filepath"
	"testing"

	"github.com/songminho/ragconsole/internal/domain"
)

func newTestRepo(t *testing.T) *HistoryRepository {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewDB() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewHistoryRepository(db)
}

func TestOpenSessionIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)

	first, err := repo.OpenSession("default")
	if err != nil {
		t.Fatalf("OpenSession() error: %v", err)
	}
	second, err := repo.OpenSession("default")
	if err != nil {
		t.Fatalf("OpenSession() second call error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("session ids differ: %s vs %s", first.ID, second.ID)
	}
}

func TestAppendAndListMessages(t *testing.T) {
	repo := newTestRepo(t)
	session, err := repo.OpenSession("default")
	if err != nil {
		t.Fatalf("OpenSession() error: %v", err)
	}

	userMsg := &domain.Message{SessionID: session.ID, Role: domain.RoleUser, Content: "질문"}
	if err := repo.AppendMessage(userMsg); err != nil {
		t.Fatalf("AppendMessage(user) error: %v", err)
	}
	botMsg := &domain.Message{SessionID: session.ID, Role: domain.RoleBot, Content: "생성 중..."}
	if err := repo.AppendMessage(botMsg); err != nil {
		t.Fatalf("AppendMessage(bot) error: %v", err)
	}

	// Resolving a placeholder reuses its id and replaces the content.
	botMsg.Content = "답변"
	if err := repo.AppendMessage(botMsg); err != nil {
		t.Fatalf("AppendMessage(resolved) error: %v", err)
	}

	messages, err := repo.Messages(session.ID)
	if err != nil {
		t.Fatalf("Messages() error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Role != domain.RoleUser || messages[0].Content != "질문" {
		t.Errorf("first message = %+v", messages[0])
	}
	if messages[1].Content != "답변" {
		t.Errorf("resolved message content = %q, want 답변", messages[1].Content)
	}
}
