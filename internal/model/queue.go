package model

import (
	"errors"
	"sync"

	"github.com/Pe-ter-M/chess-backend/internal/chess"
)

var ErrAlreadyQueued = errors.New("player already in queue")

// MatchFoundEvent tells a queued player which game to join and which
// color they were dealt.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  chess.Color `json:"color"`
}

// Queue holds players waiting for an opponent, longest wait first.
type Queue struct {
	mu      sync.Mutex
	players []Player
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Add(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.ID == player.ID {
			return ErrAlreadyQueued
		}
	}
	q.players = append(q.players, player)
	return nil
}

// Remove takes a player back out, for when they stop waiting.
func (q *Queue) Remove(playerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.ID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return
		}
	}
}

// NextPair pops the two players who have waited longest. ok is false
// while fewer than two are queued.
func (q *Queue) NextPair() (Player, Player, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return Player{}, Player{}, false
	}
	first, second := q.players[0], q.players[1]
	q.players = q.players[2:]
	return first, second, true
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
