// Package storage provides SQLite-based persistence for round history and
// the local scoreboard. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/games/rps"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RoundRecord is one persisted round.
type RoundRecord struct {
	ID            int64
	SessionID     string
	PlayerName    string
	Round         int
	Difficulty    core.Difficulty
	PlayerMove    core.Move
	ComputerMove  core.Move
	Outcome       core.Outcome
	PlayerScore   int
	ComputerScore int
	Strategy      string
	CreatedAt     time.Time
}

// RoundFromResult converts a session round into a record.
func RoundFromResult(res rps.RoundResult) RoundRecord {
	return RoundRecord{
		SessionID:     res.SessionID,
		PlayerName:    res.PlayerName,
		Round:         res.Round,
		Difficulty:    res.Difficulty,
		PlayerMove:    res.PlayerMove,
		ComputerMove:  res.ComputerMove,
		Outcome:       res.Outcome,
		PlayerScore:   res.Scores.Player,
		ComputerScore: res.Scores.Computer,
		Strategy:      res.Strategy.String(),
	}
}

// ScoreRecord is the running tally of one session. Difficulty is the level
// of the session's latest round.
type ScoreRecord struct {
	ID            int64
	SessionID     string
	PlayerName    string
	Difficulty    core.Difficulty
	PlayerScore   int
	ComputerScore int
	Rounds        int
	CreatedAt     time.Time
}

// DifficultyStats aggregates scoreboard entries for one difficulty.
type DifficultyStats struct {
	Difficulty   core.Difficulty
	Sessions     int
	Rounds       int
	PlayerWins   int
	ComputerWins int
	BestScore    int
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			round INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			player_move TEXT NOT NULL,
			computer_move TEXT NOT NULL,
			outcome INTEGER NOT NULL,
			player_score INTEGER NOT NULL DEFAULT 0,
			computer_score INTEGER NOT NULL DEFAULT 0,
			strategy TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id, round);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			player_name TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			player_score INTEGER NOT NULL,
			computer_score INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(player_score DESC, computer_score ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records one round. Returns the ID of the inserted record.
func (s *Store) SaveRound(rec RoundRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rounds
		 (session_id, player_name, round, difficulty, player_move, computer_move, outcome, player_score, computer_score, strategy)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.PlayerName,
		rec.Round,
		rec.Difficulty.String(),
		rec.PlayerMove.String(),
		rec.ComputerMove.String(),
		int(rec.Outcome),
		rec.PlayerScore,
		rec.ComputerScore,
		rec.Strategy,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const roundColumns = `id, session_id, player_name, round, difficulty, player_move, computer_move,
	outcome, player_score, computer_score, strategy, created_at`

// RecentRounds retrieves the most recent rounds across all sessions, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	return scanRounds(rows)
}

// SessionRounds retrieves every round of one session in play order.
func (s *Store) SessionRounds(sessionID string) ([]RoundRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE session_id = ?
		 ORDER BY round ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session rounds: %w", err)
	}
	return scanRounds(rows)
}

func scanRounds(rows *sql.Rows) ([]RoundRecord, error) {
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var (
			rec                      RoundRecord
			difficulty, player, comp string
			outcome                  int
			createdAt                any
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.PlayerName,
			&rec.Round,
			&difficulty,
			&player,
			&comp,
			&outcome,
			&rec.PlayerScore,
			&rec.ComputerScore,
			&rec.Strategy,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if err := rec.Difficulty.UnmarshalText([]byte(difficulty)); err != nil {
			return nil, fmt.Errorf("storage: round %d: %w", rec.ID, err)
		}
		if err := rec.PlayerMove.UnmarshalText([]byte(player)); err != nil {
			return nil, fmt.Errorf("storage: round %d: %w", rec.ID, err)
		}
		if err := rec.ComputerMove.UnmarshalText([]byte(comp)); err != nil {
			return nil, fmt.Errorf("storage: round %d: %w", rec.ID, err)
		}
		rec.Outcome = core.Outcome(outcome)
		rec.CreatedAt = parseTime(createdAt)

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ClearRounds deletes the whole round history.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// SaveScore records the current tally of a session. Saving the same session
// again replaces its previous entry and keeps its ID.
func (s *Store) SaveScore(rec ScoreRecord) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		`INSERT INTO scores (session_id, player_name, difficulty, player_score, computer_score, rounds)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			player_name = excluded.player_name,
			difficulty = excluded.difficulty,
			player_score = excluded.player_score,
			computer_score = excluded.computer_score,
			rounds = excluded.rounds
		 RETURNING id`,
		rec.SessionID,
		rec.PlayerName,
		rec.Difficulty.String(),
		rec.PlayerScore,
		rec.ComputerScore,
		rec.Rounds,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best sessions, highest player score first and
// fewest computer wins breaking ties.
func (s *Store) TopScores(limit int) ([]ScoreRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, player_name, difficulty, player_score, computer_score, rounds, created_at
		 FROM scores
		 ORDER BY player_score DESC, computer_score ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreRecord
	for rows.Next() {
		var (
			e          ScoreRecord
			difficulty string
			createdAt  any
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.PlayerName, &difficulty,
			&e.PlayerScore, &e.ComputerScore, &e.Rounds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if err := e.Difficulty.UnmarshalText([]byte(difficulty)); err != nil {
			return nil, fmt.Errorf("storage: score %d: %w", e.ID, err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats aggregates the scoreboard per difficulty.
// Difficulties without any session are omitted.
func (s *Store) Stats() ([]DifficultyStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), COALESCE(SUM(rounds), 0), COALESCE(SUM(player_score), 0),
		        COALESCE(SUM(computer_score), 0), COALESCE(MAX(player_score), 0), MAX(created_at)
		 FROM scores
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	byDifficulty := make(map[core.Difficulty]DifficultyStats)
	for rows.Next() {
		var (
			st         DifficultyStats
			difficulty string
			lastPlayed any
		)
		if err := rows.Scan(&difficulty, &st.Sessions, &st.Rounds, &st.PlayerWins,
			&st.ComputerWins, &st.BestScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if err := st.Difficulty.UnmarshalText([]byte(difficulty)); err != nil {
			return nil, fmt.Errorf("storage: stats: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		byDifficulty[st.Difficulty] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	stats := make([]DifficultyStats, 0, len(byDifficulty))
	for _, d := range core.Difficulties {
		if st, ok := byDifficulty[d]; ok {
			stats = append(stats, st)
		}
	}
	return stats, nil
}

// SessionScore returns the saved tally for a session, or nil if none exists.
func (s *Store) SessionScore(sessionID string) (*ScoreRecord, error) {
	var (
		e          ScoreRecord
		difficulty string
		createdAt  any
	)
	err := s.db.QueryRow(
		`SELECT id, session_id, player_name, difficulty, player_score, computer_score, rounds, created_at
		 FROM scores WHERE session_id = ?`,
		sessionID,
	).Scan(&e.ID, &e.SessionID, &e.PlayerName, &difficulty, &e.PlayerScore, &e.ComputerScore, &e.Rounds, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session score: %w", err)
	}
	if err := e.Difficulty.UnmarshalText([]byte(difficulty)); err != nil {
		return nil, fmt.Errorf("storage: score %d: %w", e.ID, err)
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
