package domain

import "time"

// Transcript message roles
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Session groups the transcript of one console run.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one transcript entry. The transcript is append-only; a
// message's content may be rewritten once, when a placeholder resolves.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
