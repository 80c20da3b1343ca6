package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS chat_sessions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_sessions_created ON chat_sessions(created_at);

	CREATE TABLE IF NOT EXISTS chat_messages (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES chat_sessions(id),
		content TEXT NOT NULL,
		is_bot INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages(session_id, created_at);

	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		location TEXT NOT NULL,
		companion TEXT NOT NULL,
		memo TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_schedules_date ON schedules(date);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListSessions retrieves all chat sessions, newest first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]domain.Session, error) {
	query := `SELECT id, title, created_at FROM chat_sessions ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		var sess domain.Session
		var createdAt int64
		if err := rows.Scan(&sess.ID, &sess.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sess.CreatedAt = time.Unix(createdAt, 0)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// GetSession retrieves a session by id, or nil when absent.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	query := `SELECT id, title, created_at FROM chat_sessions WHERE id = ?`

	var sess domain.Session
	var createdAt int64
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(&sess.ID, &sess.Title, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}
	sess.CreatedAt = time.Unix(createdAt, 0)
	return &sess, nil
}

// CreateSession persists a new chat session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	query := `INSERT INTO chat_sessions (id, title, created_at) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, session.ID, session.Title, session.CreatedAt.Unix()); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// DeleteSession removes a session and its messages.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete session: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session messages: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

// ListMessages retrieves a session's messages, oldest first.
func (s *SQLiteStore) ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	query := `
		SELECT id, session_id, content, is_bot, created_at
		FROM chat_messages WHERE session_id = ? ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		var isBot int
		var createdAt int64
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Content, &isBot, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		msg.FromBot = isBot != 0
		msg.CreatedAt = time.Unix(createdAt, 0)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// AppendMessage persists one finalized message.
func (s *SQLiteStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	isBot := 0
	if msg.FromBot {
		isBot = 1
	}
	query := `INSERT INTO chat_messages (id, session_id, content, is_bot, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, msg.ID, msg.SessionID, msg.Content, isBot, msg.CreatedAt.Unix()); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// CreateSchedule persists a calendar schedule entry.
func (s *SQLiteStore) CreateSchedule(ctx context.Context, schedule *domain.Schedule) error {
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO schedules (id, date, location, companion, memo, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		schedule.ID, schedule.Date, schedule.Location, schedule.Companion, schedule.Memo,
		schedule.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

// ListSchedules retrieves schedules for a date, oldest first.
func (s *SQLiteStore) ListSchedules(ctx context.Context, date string) ([]domain.Schedule, error) {
	query := `
		SELECT id, date, location, companion, memo, created_at
		FROM schedules WHERE date = ? ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("query schedules: %w", err)
	}
	defer rows.Close()

	schedules := []domain.Schedule{}
	for rows.Next() {
		var sch domain.Schedule
		var memo sql.NullString
		var createdAt int64
		if err := rows.Scan(&sch.ID, &sch.Date, &sch.Location, &sch.Companion, &memo, &createdAt); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		sch.Memo = memo.String
		sch.CreatedAt = time.Unix(createdAt, 0)
		schedules = append(schedules, sch)
	}
	return schedules, rows.Err()
}
