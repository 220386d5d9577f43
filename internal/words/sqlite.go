// internal/words/sqlite.go
//
// SQLite-backed dictionary.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Creating the words table on first use.
//   - Seeding it from a List (idempotent).
//   - Implementing game.WordSource with SQL lookups.
//
// The table only holds dictionary words; no game state is written here.

package words

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/session-server/internal/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS words (
	word   TEXT PRIMARY KEY,
	answer INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS words_answer_idx ON words(answer);`

// SQLite is a dictionary stored in a SQLite file.
type SQLite struct {
	db *sql.DB
}

var _ game.WordSource = (*SQLite)(nil)

// OpenSQLite opens (and creates if missing) the dictionary at dsn.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	// Ensure directory exists for ./data/words.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", dsn+sep+"_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create words table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// Seed inserts every word of l, marking answers. Existing rows are kept, but a
// word that l lists as an answer is promoted to one.
func (s *SQLite) Seed(ctx context.Context, l *List) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words (word, answer) VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET answer = MAX(answer, excluded.answer)`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, w := range l.Allowed() {
		answer := 0
		if l.IsAnswer(w) {
			answer = 1
		}
		if _, err := stmt.ExecContext(ctx, w, answer); err != nil {
			return fmt.Errorf("seed %s: %w", w, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	a, g := l.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("seeded word database")
	return nil
}

// Stats returns counts of stored words: (answers, allowed).
func (s *SQLite) Stats(ctx context.Context) (answersCount int, allowedCount int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(answer), 0), COUNT(1) FROM words`,
	).Scan(&answersCount, &allowedCount)
	return answersCount, allowedCount, err
}

// GetWord returns a random answer row. It returns "" when the table holds no
// answers or the query fails, which makes game.New reject the session.
func (s *SQLite) GetWord() string {
	var w string
	err := s.db.QueryRow(`SELECT word FROM words WHERE answer = 1 ORDER BY RANDOM() LIMIT 1`).Scan(&w)
	if err != nil {
		log.Error().Err(err).Msg("pick answer")
		return ""
	}
	return w
}

// IsWord reports whether candidate is stored.
func (s *SQLite) IsWord(candidate string) bool {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM words WHERE word = ?`, strings.ToUpper(candidate)).Scan(&one)
	if err != nil && err != sql.ErrNoRows {
		log.Error().Err(err).Msg("lookup word")
	}
	return err == nil
}
