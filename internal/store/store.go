// Package store persists games and aggregate results in a Badger
// database, so a restarted server can pick its games back up.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/Pe-ter-M/chess-backend/internal/chess"
	"github.com/Pe-ter-M/chess-backend/internal/model"
)

// ErrNotFound means the requested game has no saved state.
var ErrNotFound = errors.New("not found")

const (
	gamePrefix = "game:"
	statsKey   = "stats"
)

type Store struct {
	db *badger.DB
}

// Open opens or creates the database under dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}

func (s *Store) SaveGame(saved model.SavedGame) error {
	raw, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", saved.ID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(saved.ID), raw)
	})
}

func (s *Store) LoadGame(id string) (model.SavedGame, error) {
	var saved model.SavedGame
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &saved)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.SavedGame{}, ErrNotFound
	}
	if err != nil {
		return model.SavedGame{}, fmt.Errorf("load game %s: %w", id, err)
	}
	return saved, nil
}

func (s *Store) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(id))
	})
}

// ListGameIDs returns the ids of every saved game.
func (s *Store) ListGameIDs() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return ids, nil
}

// Stats aggregate finished games across the server's lifetime.
type Stats struct {
	GamesPlayed int `json:"gamesPlayed"`
	WhiteWins   int `json:"whiteWins"`
	BlackWins   int `json:"blackWins"`
	Checkmates  int `json:"checkmates"`
	Stalemates  int `json:"stalemates"`
}

func (s *Store) Stats() (Stats, error) {
	var stats Stats
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(statsKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stats)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}

// RecordOutcome counts one finished game. Outcomes of games still in
// progress are ignored.
func (s *Store) RecordOutcome(outcome chess.Outcome) error {
	if !outcome.Terminal() {
		return nil
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var stats Stats
		item, err := txn.Get([]byte(statsKey))
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &stats)
			}); err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
		default:
			return err
		}

		stats.GamesPlayed++
		switch outcome {
		case chess.OutcomeWhiteWin:
			stats.WhiteWins++
			stats.Checkmates++
		case chess.OutcomeBlackWin:
			stats.BlackWins++
			stats.Checkmates++
		case chess.OutcomeStalemate:
			stats.Stalemates++
		}

		raw, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(statsKey), raw)
	})
}
