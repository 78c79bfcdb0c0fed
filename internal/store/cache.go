package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/schoolquest/tui/internal/model"
)

// CacheStore is the local read cache backing the screens: missions,
// clan chat history, and the ranking are upserted here after every
// fetch so the UI renders instantly on startup and stays usable
// offline. It is a cache of server state, never the source of truth.
type CacheStore struct {
	db *sqlx.DB
}

// NewCacheStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewCacheStore(dbPath string) (*CacheStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &CacheStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *CacheStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *CacheStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// UpsertMissions inserts or replaces a batch of assigned missions.
func (s *CacheStore) UpsertMissions(ctx context.Context, missions []model.AssignedMission) error {
	if len(missions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO missions (
			id, mission_id, student_id, status,
			assigned_at, responded_at,
			title, description, xp, coins, category,
			fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, m := range missions {
		var respondedAt *time.Time
		if m.RespondedAt != nil {
			utc := m.RespondedAt.UTC()
			respondedAt = &utc
		}

		var title, description, category string
		var xp, coins int
		if m.Mission != nil {
			title = m.Mission.Title
			description = m.Mission.Description
			category = m.Mission.Category
			xp = m.Mission.XP
			coins = m.Mission.Coins
		}

		_, err = stmt.ExecContext(ctx,
			m.ID, m.MissionID, m.StudentID, m.Status,
			m.AssignedAt.UTC(), respondedAt,
			title, description, xp, coins, category,
			now,
		)
		if err != nil {
			return fmt.Errorf("upserting mission %d: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

// GetMissions retrieves the cached assigned missions, newest first.
func (s *CacheStore) GetMissions(ctx context.Context) ([]model.AssignedMission, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM missions ORDER BY assigned_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying missions: %w", err)
	}
	defer rows.Close()

	var missions []model.AssignedMission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, m)
	}

	return missions, rows.Err()
}

// UpsertMessages inserts or replaces a batch of clan chat messages.
func (s *CacheStore) UpsertMessages(ctx context.Context, messages []model.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO clan_messages (
			id, clan_id, user_id, user_name, user_avatar,
			message, created_at, edited
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range messages {
		_, err = stmt.ExecContext(ctx,
			m.ID, m.ClanID, m.UserID, m.UserName, m.AvatarURL,
			m.Message, m.CreatedAt.UTC(), boolToInt(m.Edited),
		)
		if err != nil {
			return fmt.Errorf("upserting message %d: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

// GetMessages retrieves cached chat history for a clan in
// chronological order, limited to the most recent rows.
func (s *CacheStore) GetMessages(ctx context.Context, clanID, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	// Fetch newest first, then reverse to chronological order.
	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM clan_messages
		WHERE clan_id = ?
		ORDER BY created_at DESC
		LIMIT ?`,
		clanID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages for clan %d: %w", clanID, err)
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// ReplaceRanking replaces the cached leaderboard wholesale, keeping
// the server's ordering as the position column.
func (s *CacheStore) ReplaceRanking(ctx context.Context, entries []model.RankingEntry) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ranking"); err != nil {
		return fmt.Errorf("clearing ranking: %w", err)
	}

	for i, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ranking (position, name, level, xp, grade)
			VALUES (?, ?, ?, ?, ?)`,
			i+1, e.Name, e.Level, e.XP, e.Grade,
		)
		if err != nil {
			return fmt.Errorf("inserting ranking row %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// GetRanking retrieves the cached leaderboard in server order.
func (s *CacheStore) GetRanking(ctx context.Context) ([]model.RankingEntry, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT name, level, xp, grade FROM ranking ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("querying ranking: %w", err)
	}
	defer rows.Close()

	var entries []model.RankingEntry
	for rows.Next() {
		var e model.RankingEntry
		if err := rows.Scan(&e.Name, &e.Level, &e.XP, &e.Grade); err != nil {
			return nil, fmt.Errorf("scanning ranking row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// scanMission scans a mission row from a sqlx.Rows result set.
func scanMission(rows *sqlx.Rows) (model.AssignedMission, error) {
	var (
		m           model.AssignedMission
		respondedAt sql.NullTime
		assignedAt  time.Time
		fetchedAt   time.Time
		title       string
		description string
		category    string
		xp          int
		coins       int
	)

	err := rows.Scan(
		&m.ID, &m.MissionID, &m.StudentID, &m.Status,
		&assignedAt, &respondedAt,
		&title, &description, &xp, &coins, &category,
		&fetchedAt,
	)
	if err != nil {
		return model.AssignedMission{}, fmt.Errorf("scanning mission row: %w", err)
	}

	m.AssignedAt = assignedAt
	if respondedAt.Valid {
		t := respondedAt.Time
		m.RespondedAt = &t
	}
	m.Mission = &model.Mission{
		ID:          m.MissionID,
		Title:       title,
		Description: description,
		XP:          xp,
		Coins:       coins,
		Category:    category,
	}

	return m, nil
}

// scanMessage scans a chat message row from a sqlx.Rows result set.
func scanMessage(rows *sqlx.Rows) (model.ChatMessage, error) {
	var (
		m         model.ChatMessage
		edited    int
		createdAt time.Time
	)

	err := rows.Scan(
		&m.ID, &m.ClanID, &m.UserID, &m.UserName, &m.AvatarURL,
		&m.Message, &createdAt, &edited,
	)
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("scanning message row: %w", err)
	}

	m.CreatedAt = createdAt
	m.Edited = edited != 0

	return m, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
