package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
)

// ErrNoSave is returned by LoadBoard when the owner has no saved board for
// the game.
var ErrNoSave = errors.New("storage: no saved board")

// SaveInfo describes a stored board without its payload.
type SaveInfo struct {
	Owner     string
	GameID    string
	RawSize   int
	Stored    int
	UpdatedAt time.Time
}

// Encoder and decoder are safe for concurrent EncodeAll/DecodeAll calls.
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

// SaveBoard stores an unfinished game snapshot for owner, replacing any
// earlier save of the same game. The snapshot is zstd-compressed.
func (s *Store) SaveBoard(owner, gameID string, snapshot []byte) error {
	packed := encoder.EncodeAll(snapshot, nil)
	_, err := s.db.Exec(
		`INSERT INTO saves (owner, game_id, snapshot, raw_size, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(owner, game_id) DO UPDATE SET
		   snapshot = excluded.snapshot,
		   raw_size = excluded.raw_size,
		   updated_at = excluded.updated_at`,
		owner, gameID, packed, len(snapshot),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save board: %w", err)
	}
	return nil
}

// LoadBoard returns the decompressed snapshot saved by owner for gameID.
func (s *Store) LoadBoard(owner, gameID string) ([]byte, error) {
	var packed []byte
	var rawSize int
	err := s.db.QueryRow(
		"SELECT snapshot, raw_size FROM saves WHERE owner = ? AND game_id = ?",
		owner, gameID,
	).Scan(&packed, &rawSize)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load board: %w", err)
	}

	data, err := decoder.DecodeAll(packed, make([]byte, 0, rawSize))
	if err != nil {
		return nil, fmt.Errorf("storage: corrupt board save: %w", err)
	}
	return data, nil
}

// HasBoard reports whether owner has a saved board for gameID.
func (s *Store) HasBoard(owner, gameID string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM saves WHERE owner = ? AND game_id = ?",
		owner, gameID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	return n > 0, nil
}

// DeleteBoard removes a saved board. Deleting a missing save is not an error.
func (s *Store) DeleteBoard(owner, gameID string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE owner = ? AND game_id = ?", owner, gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete board: %w", err)
	}
	return nil
}

// ListSaves returns the saves of owner, most recent first.
func (s *Store) ListSaves(owner string) ([]SaveInfo, error) {
	rows, err := s.db.Query(
		`SELECT owner, game_id, raw_size, length(snapshot), updated_at
		 FROM saves
		 WHERE owner = ?
		 ORDER BY updated_at DESC, game_id ASC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SaveInfo
	for rows.Next() {
		var si SaveInfo
		var updatedAt any
		if err := rows.Scan(&si.Owner, &si.GameID, &si.RawSize, &si.Stored, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan save row: %w", err)
		}
		si.UpdatedAt = parseTime(updatedAt)
		saves = append(saves, si)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return saves, nil
}
