package storage

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "linkdrop-bot/internal/errors"

	_ "modernc.org/sqlite"
)

// SQLiteStorage implements Storage interface with SQLite persistence
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLite storage
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc sqlite allows one writer; a single pooled connection avoids
	// SQLITE_BUSY under concurrent claims
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return storage, nil
}

// initialize creates the necessary tables
func (s *SQLiteStorage) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS links (
		number INTEGER PRIMARY KEY,
		url TEXT NOT NULL,
		used INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS claimants (
		telegram_id INTEGER PRIMARY KEY,
		display_name TEXT,
		code TEXT UNIQUE NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS issues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		issue_code TEXT NOT NULL,
		claimant_id INTEGER NOT NULL,
		number INTEGER NOT NULL,
		url TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_issues_code ON issues(issue_code);

	CREATE TABLE IF NOT EXISTS trainers (
		trainer_id INTEGER PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS user_states (
		user_id INTEGER PRIMARY KEY,
		state TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS claim_sessions (
		user_id INTEGER PRIMARY KEY,
		issue_code TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Resources

func (s *SQLiteStorage) UpsertResources(entries []ResourceEntry) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	count := 0
	for _, entry := range entries {
		// Re-uploading a number resets it to free, even if it was issued
		_, err := tx.Exec(`
			INSERT INTO links (number, url, used) VALUES (?, ?, 0)
			ON CONFLICT(number) DO UPDATE SET url = excluded.url, used = 0`,
			entry.Number, entry.URL,
		)
		if err != nil {
			return 0, err
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SQLiteStorage) ListFreeNumbers() ([]int, error) {
	rows, err := s.db.Query("SELECT number FROM links WHERE used = 0 ORDER BY number")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func (s *SQLiteStorage) LookupResource(number int) (*Resource, error) {
	res := &Resource{}
	err := s.db.QueryRow(
		"SELECT number, url, used FROM links WHERE number = ?",
		number,
	).Scan(&res.Number, &res.URL, &res.Used)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resource %d: %w", number, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *SQLiteStorage) CountResources() (int, int, error) {
	var total, free int
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(CASE WHEN used = 0 THEN 1 ELSE 0 END), 0) FROM links",
	).Scan(&total, &free)
	return total, free, err
}

func (s *SQLiteStorage) ClearAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM links"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM issues"); err != nil {
		return err
	}
	return tx.Commit()
}

// ClaimNumbers performs the atomic claim: the conditional UPDATE succeeds
// for at most one concurrent caller per number, and the issue rows land in
// the same transaction as the used flags
func (s *SQLiteStorage) ClaimNumbers(issueCode string, claimantID int64, numbers []int, allOrNothing bool) ([]ClaimedResource, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	var claimed []ClaimedResource

	for _, n := range numbers {
		res, err := tx.Exec("UPDATE links SET used = 1 WHERE number = ? AND used = 0", n)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			if allOrNothing {
				// Rollback drops any numbers claimed so far
				return nil, nil
			}
			continue
		}

		var url string
		if err := tx.QueryRow("SELECT url FROM links WHERE number = ?", n).Scan(&url); err != nil {
			return nil, err
		}

		if _, err := tx.Exec(
			"INSERT INTO issues (issue_code, claimant_id, number, url, created_at) VALUES (?, ?, ?, ?, ?)",
			issueCode, claimantID, n, url, now,
		); err != nil {
			return nil, err
		}

		claimed = append(claimed, ClaimedResource{Number: n, URL: url})
	}

	if len(claimed) == 0 {
		return nil, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return claimed, nil
}

// Claimants

func (s *SQLiteStorage) GetOrCreateClaimant(telegramID int64, displayName, code string) (*Claimant, error) {
	// The generated code only sticks on first insert; re-contact refreshes
	// the display name (when known) and keeps the original code
	_, err := s.db.Exec(`
		INSERT INTO claimants (telegram_id, display_name, code)
		VALUES (?, ?, ?)
		ON CONFLICT(telegram_id) DO UPDATE SET display_name = CASE
			WHEN excluded.display_name = '' THEN claimants.display_name
			ELSE excluded.display_name
		END`,
		telegramID, displayName, code,
	)
	if err != nil {
		return nil, err
	}

	claimant := &Claimant{}
	err = s.db.QueryRow(
		"SELECT telegram_id, display_name, code, created_at FROM claimants WHERE telegram_id = ?",
		telegramID,
	).Scan(&claimant.TelegramID, &claimant.DisplayName, &claimant.Code, &claimant.CreatedAt)
	if err != nil {
		return nil, err
	}
	return claimant, nil
}

func (s *SQLiteStorage) FindClaimantByCode(code string) (int64, error) {
	// Permanent codes take precedence over issue codes on collision
	var telegramID int64
	err := s.db.QueryRow("SELECT telegram_id FROM claimants WHERE code = ?", code).Scan(&telegramID)
	if err == nil {
		return telegramID, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	err = s.db.QueryRow(
		"SELECT claimant_id FROM issues WHERE issue_code = ? ORDER BY id LIMIT 1",
		code,
	).Scan(&telegramID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("code %q: %w", code, apperrors.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return telegramID, nil
}

// Issues

func (s *SQLiteStorage) IssuesByCode(issueCode string) ([]*Issue, error) {
	rows, err := s.db.Query(`
		SELECT id, issue_code, claimant_id, number, url, created_at
		FROM issues WHERE issue_code = ? ORDER BY number`,
		issueCode,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var issues []*Issue
	for rows.Next() {
		issue := &Issue{}
		if err := rows.Scan(&issue.ID, &issue.IssueCode, &issue.ClaimantID, &issue.Number, &issue.URL, &issue.CreatedAt); err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

// Trainers

func (s *SQLiteStorage) AddTrainer(trainerID int64) error {
	_, err := s.db.Exec(
		"INSERT INTO trainers (trainer_id) VALUES (?) ON CONFLICT DO NOTHING",
		trainerID,
	)
	return err
}

func (s *SQLiteStorage) IsTrainer(trainerID int64) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM trainers WHERE trainer_id = ?", trainerID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// User states

func (s *SQLiteStorage) SetUserState(userID int64, state string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO user_states (user_id, state) VALUES (?, ?)",
		userID, state,
	)
	return err
}

func (s *SQLiteStorage) GetUserState(userID int64) (string, error) {
	var state string
	err := s.db.QueryRow(
		"SELECT state FROM user_states WHERE user_id = ?",
		userID,
	).Scan(&state)

	if err == sql.ErrNoRows {
		return "", fmt.Errorf("state not found for user %d", userID)
	}
	return state, err
}

func (s *SQLiteStorage) DeleteUserState(userID int64) error {
	_, err := s.db.Exec("DELETE FROM user_states WHERE user_id = ?", userID)
	return err
}

// Claim sessions

func (s *SQLiteStorage) SetClaimSession(userID int64, session *ClaimSession) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO claim_sessions (user_id, issue_code, created_at) VALUES (?, ?, ?)",
		userID, session.IssueCode, session.CreatedAt,
	)
	return err
}

func (s *SQLiteStorage) GetClaimSession(userID int64) (*ClaimSession, error) {
	session := &ClaimSession{}
	err := s.db.QueryRow(
		"SELECT issue_code, created_at FROM claim_sessions WHERE user_id = ?",
		userID,
	).Scan(&session.IssueCode, &session.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("claim session for user %d: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SQLiteStorage) DeleteClaimSession(userID int64) error {
	_, err := s.db.Exec("DELETE FROM claim_sessions WHERE user_id = ?", userID)
	return err
}

// CleanupExpiredSessions removes abandoned sessions older than maxAge
func (s *SQLiteStorage) CleanupExpiredSessions(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	_, err := s.db.Exec("DELETE FROM claim_sessions WHERE created_at < ?", cutoff)
	return err
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
