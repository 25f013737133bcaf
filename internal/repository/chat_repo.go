package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"swasthyam/internal/model"
)

type ChatRepository struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create stores one question/answer exchange.
func (r *ChatRepository) Create(ctx context.Context, m *model.ChatMessage) error {
	query := `
        INSERT INTO chat_messages (user_id, session_id, question, answer, source,
                                   age_at_time, weeks_at_time, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query,
		m.UserID, m.SessionID, m.Question, m.Answer, m.Source,
		m.AgeAtTime, m.WeeksAtTime,
	).Scan(&m.ID, &m.CreatedAt)
}

// ListRecent returns the user's latest messages, newest first.
func (r *ChatRepository) ListRecent(ctx context.Context, userID, limit int) ([]model.ChatMessage, error) {
	query := `
        SELECT id, user_id, session_id, question, answer, source,
               age_at_time, weeks_at_time, helpful, created_at
        FROM chat_messages
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.SessionID, &m.Question, &m.Answer, &m.Source,
			&m.AgeAtTime, &m.WeeksAtTime, &m.Helpful, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// SetHelpful records the user's rating of an answer.
func (r *ChatRepository) SetHelpful(ctx context.Context, messageID, userID int, helpful bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE chat_messages SET helpful = $3 WHERE id = $1 AND user_id = $2`,
		messageID, userID, helpful)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Counts returns total and rated-helpful message counts for a user.
func (r *ChatRepository) Counts(ctx context.Context, userID int) (total, helpful int, err error) {
	query := `
        SELECT COUNT(*), COUNT(*) FILTER (WHERE helpful)
        FROM chat_messages
        WHERE user_id = $1
    `
	err = r.db.QueryRow(ctx, query, userID).Scan(&total, &helpful)
	return total, helpful, err
}
