// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/lingua/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrDuplicateEmail is returned when an account with the same email exists.
var ErrDuplicateEmail = errors.New("email already registered")

// Store wraps SQLite access for accounts, sessions and progress.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps the in-process view of the file consistent.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session (
			slot INTEGER PRIMARY KEY CHECK (slot = 1),
			account_id TEXT NOT NULL,
			logged_in_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS progress (
			account_id TEXT PRIMARY KEY,
			xp INTEGER NOT NULL,
			streak INTEGER NOT NULL,
			last_activity TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS completed_lessons (
			account_id TEXT NOT NULL,
			lesson_id TEXT NOT NULL,
			PRIMARY KEY (account_id, lesson_id)
		);`,
		`CREATE TABLE IF NOT EXISTS language_progress (
			account_id TEXT NOT NULL,
			lang TEXT NOT NULL,
			level INTEGER NOT NULL,
			lessons_completed INTEGER NOT NULL,
			xp_earned INTEGER NOT NULL,
			PRIMARY KEY (account_id, lang)
		);`,
		`CREATE TABLE IF NOT EXISTS activity (
			id INTEGER PRIMARY KEY,
			account_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			ref TEXT NOT NULL,
			lang TEXT NOT NULL,
			xp INTEGER NOT NULL,
			at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_account_at ON activity(account_id, at);`,
		`CREATE TABLE IF NOT EXISTS word_misses (
			account_id TEXT NOT NULL,
			word TEXT NOT NULL,
			misses INTEGER NOT NULL,
			PRIMARY KEY (account_id, word)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// inTx runs fn in a transaction and commits when fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}

// CreateAccount inserts a new account. It fails with ErrDuplicateEmail
// when the email is taken.
func (s *Store) CreateAccount(ctx context.Context, acct model.Account) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return insertAccount(ctx, tx, acct)
	})
}

// RegisterAccount creates acct with its initial progress and opens its
// session in one transaction. Nothing is written when any step fails.
func (s *Store) RegisterAccount(ctx context.Context, acct model.Account, p model.Progress, at time.Time) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertAccount(ctx, tx, acct); err != nil {
			return err
		}
		if err := writeProgress(ctx, tx, acct.ID, p); err != nil {
			return err
		}
		return writeSession(ctx, tx, acct.ID, at)
	})
}

func insertAccount(ctx context.Context, tx *sql.Tx, acct model.Account) error {
	var exists int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM accounts WHERE email = ?`, acct.Email).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return ErrDuplicateEmail
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (id, username, email, created_at) VALUES (?, ?, ?, ?)`,
		acct.ID, acct.Username, acct.Email, formatTime(acct.CreatedAt))
	return err
}

// FindAccountByEmail returns the account registered with email.
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (model.Account, bool, error) {
	return s.findAccount(ctx, `SELECT id, username, email, created_at FROM accounts WHERE email = ?`, email)
}

// FindAccountByID returns the account with the given id.
func (s *Store) FindAccountByID(ctx context.Context, id string) (model.Account, bool, error) {
	return s.findAccount(ctx, `SELECT id, username, email, created_at FROM accounts WHERE id = ?`, id)
}

// AccountExists reports whether an account with id exists.
func (s *Store) AccountExists(ctx context.Context, id string) (bool, error) {
	_, ok, err := s.FindAccountByID(ctx, id)
	return ok, err
}

func (s *Store) findAccount(ctx context.Context, query, arg string) (model.Account, bool, error) {
	var acct model.Account
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&acct.ID, &acct.Username, &acct.Email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, false, nil
	}
	if err != nil {
		return model.Account{}, false, err
	}
	acct.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Account{}, false, err
	}
	return acct, true, nil
}

// SetSession makes accountID the current session.
func (s *Store) SetSession(ctx context.Context, accountID string, at time.Time) error {
	return writeSession(ctx, s.db, accountID, at)
}

func writeSession(ctx context.Context, db execer, accountID string, at time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO session (slot, account_id, logged_in_at) VALUES (1, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET account_id = excluded.account_id, logged_in_at = excluded.logged_in_at`,
		accountID, formatTime(at))
	return err
}

// SessionAccount returns the account id of the current session.
func (s *Store) SessionAccount(ctx context.Context) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT account_id FROM session WHERE slot = 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// ClearSession ends the current session.
func (s *Store) ClearSession(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE slot = 1`)
	return err
}

// GetProgress loads the progress record for accountID.
func (s *Store) GetProgress(ctx context.Context, accountID string) (model.Progress, bool, error) {
	p := model.NewProgress()
	var lastActivity string
	err := s.db.QueryRowContext(ctx,
		`SELECT xp, streak, last_activity FROM progress WHERE account_id = ?`, accountID).
		Scan(&p.XP, &p.Streak, &lastActivity)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Progress{}, false, nil
	}
	if err != nil {
		return model.Progress{}, false, err
	}
	if lastActivity != "" {
		p.LastActivity, err = parseTime(lastActivity)
		if err != nil {
			return model.Progress{}, false, err
		}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT lesson_id FROM completed_lessons WHERE account_id = ?`, accountID)
	if err != nil {
		return model.Progress{}, false, err
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			closeRows(rows)
			return model.Progress{}, false, err
		}
		p.CompletedLessons[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		closeRows(rows)
		return model.Progress{}, false, err
	}
	closeRows(rows)

	rows, err = s.db.QueryContext(ctx,
		`SELECT lang, level, lessons_completed, xp_earned FROM language_progress WHERE account_id = ?`, accountID)
	if err != nil {
		return model.Progress{}, false, err
	}
	defer closeRows(rows)
	for rows.Next() {
		var lang string
		var stat model.LanguageStat
		if err := rows.Scan(&lang, &stat.Level, &stat.LessonsCompleted, &stat.XPEarned); err != nil {
			return model.Progress{}, false, err
		}
		p.Languages[lang] = stat
	}
	if err := rows.Err(); err != nil {
		return model.Progress{}, false, err
	}
	return p, true, nil
}

// PutProgress writes the progress record for accountID in one transaction.
// Completed lessons and language rows are only ever inserted or updated,
// so a record never loses lessons or languages.
func (s *Store) PutProgress(ctx context.Context, accountID string, p model.Progress) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return writeProgress(ctx, tx, accountID, p)
	})
}

func writeProgress(ctx context.Context, tx *sql.Tx, accountID string, p model.Progress) error {
	lastActivity := ""
	if !p.LastActivity.IsZero() {
		lastActivity = formatTime(p.LastActivity)
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO progress (account_id, xp, streak, last_activity) VALUES (?, ?, ?, ?)
		 ON CONFLICT(account_id) DO UPDATE SET xp = excluded.xp, streak = excluded.streak, last_activity = excluded.last_activity`,
		accountID, p.XP, p.Streak, lastActivity)
	if err != nil {
		return err
	}

	if len(p.CompletedLessons) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT OR IGNORE INTO completed_lessons (account_id, lesson_id) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer closeStmt(stmt)
		for id := range p.CompletedLessons {
			if _, err := stmt.ExecContext(ctx, accountID, id); err != nil {
				return err
			}
		}
	}

	if len(p.Languages) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO language_progress (account_id, lang, level, lessons_completed, xp_earned) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(account_id, lang) DO UPDATE SET level = excluded.level,
				lessons_completed = excluded.lessons_completed, xp_earned = excluded.xp_earned`)
		if err != nil {
			return err
		}
		defer closeStmt(stmt)
		for lang, stat := range p.Languages {
			if _, err := stmt.ExecContext(ctx, accountID, lang, stat.Level, stat.LessonsCompleted, stat.XPEarned); err != nil {
				return err
			}
		}
	}
	return nil
}

// AppendActivity stores a journal entry.
func (s *Store) AppendActivity(ctx context.Context, a model.Activity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (account_id, kind, ref, lang, xp, at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.AccountID, string(a.Kind), a.Ref, a.Lang, a.XP, formatTime(a.At))
	return err
}

// ListActivity returns journal entries for accountID at or after since, oldest first.
func (s *Store) ListActivity(ctx context.Context, accountID string, since time.Time) ([]model.Activity, error) {
	clauses := []string{"account_id = ?"}
	args := []any{accountID}
	if !since.IsZero() {
		clauses = append(clauses, "at >= ?")
		args = append(args, formatTime(since))
	}
	query := fmt.Sprintf(`SELECT account_id, kind, ref, lang, xp, at
		FROM activity
		WHERE %s
		ORDER BY at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var result []model.Activity
	for rows.Next() {
		var a model.Activity
		var kind, at string
		if err := rows.Scan(&a.AccountID, &kind, &a.Ref, &a.Lang, &a.XP, &at); err != nil {
			return nil, err
		}
		a.Kind = model.ActivityKind(kind)
		a.At, err = parseTime(at)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RecordMiss counts one wrong answer for word.
func (s *Store) RecordMiss(ctx context.Context, accountID, word string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO word_misses (account_id, word, misses) VALUES (?, ?, 1)
		 ON CONFLICT(account_id, word) DO UPDATE SET misses = misses + 1`,
		accountID, word)
	return err
}

// WordMisses returns the wrong-answer count per word for accountID.
func (s *Store) WordMisses(ctx context.Context, accountID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, misses FROM word_misses WHERE account_id = ?`, accountID)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)
	out := make(map[string]int)
	for rows.Next() {
		var word string
		var n int
		if err := rows.Scan(&word, &n); err != nil {
			return nil, err
		}
		out[word] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Fixed-width UTC timestamps keep lexical order equal to chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	return time.Parse(timeLayout, v)
}

func closeRows(rows *sql.Rows) {
	if cerr := rows.Close(); cerr != nil {
		// Best-effort rows close.
		_ = cerr
	}
}

func closeStmt(stmt *sql.Stmt) {
	if cerr := stmt.Close(); cerr != nil {
		// Best-effort statement close.
		_ = cerr
	}
}
