package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/songminho/ragconsole/internal/domain"
)

// HistoryRepository persists console chat transcripts
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// OpenSession returns the session with the given name, creating it on
// first use. Session names come from configuration, one per console
// deployment.
func (r *HistoryRepository) OpenSession(name string) (*domain.Session, error) {
	session := &domain.Session{}
	err := r.db.QueryRow(`
		SELECT id, name, created_at, updated_at
		FROM sessions WHERE name = ?
	`, name).Scan(&session.ID, &session.Name, &session.CreatedAt, &session.UpdatedAt)

	if err == nil {
		return session, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	now := time.Now()
	session = &domain.Session{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = r.db.Exec(`
		INSERT INTO sessions (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, session.ID, session.Name, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// AppendMessage inserts a transcript message. A resolved placeholder is
// written with the id it already carries; an existing row with that id is
// replaced by the final content.
func (r *HistoryRepository) AppendMessage(message *domain.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO messages (id, session_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET content = excluded.content
	`, message.ID, message.SessionID, message.Role, message.Content, message.CreatedAt)

	if err == nil {
		_, _ = r.db.Exec(`UPDATE sessions SET updated_at = ? WHERE id = ?`, time.Now(), message.SessionID)
	}
	return err
}

// Messages returns a session's transcript, oldest first.
func (r *HistoryRepository) Messages(sessionID string) ([]domain.Message, error) {
	rows, err := r.db.Query(`
		SELECT id, session_id, role, content, created_at
		FROM messages WHERE session_id = ?
		ORDER BY created_at ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
