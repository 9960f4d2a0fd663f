// Package hashing provides position hashing and repetition counting.
package hashing

import "github.com/lgbarn/chess-rules-go/internal/chess"

// PositionCounter counts how often each position hash has been seen.
type PositionCounter struct {
	counts   map[uint64]int
	maxCount int
}

// NewPositionCounter creates an empty counter.
func NewPositionCounter() *PositionCounter {
	return &PositionCounter{counts: make(map[uint64]int)}
}

// Add records one occurrence of hash and returns how often it has now been seen.
func (pc *PositionCounter) Add(hash uint64) int {
	pc.counts[hash]++
	n := pc.counts[hash]
	if n > pc.maxCount {
		pc.maxCount = n
	}
	return n
}

// Count returns how often hash has been seen.
func (pc *PositionCounter) Count(hash uint64) int {
	return pc.counts[hash]
}

// MaxCount returns the highest occurrence count of any position.
func (pc *PositionCounter) MaxCount() int {
	return pc.maxCount
}

// UniqueCount returns the number of distinct positions seen.
func (pc *PositionCounter) UniqueCount() int {
	return len(pc.counts)
}

// Reset clears the counter.
func (pc *PositionCounter) Reset() {
	pc.counts = make(map[uint64]int)
	pc.maxCount = 0
}

// CountPositions replays the displayed moves of board on a clone and counts
// every position along the way, the starting diagram included.
func CountPositions(board *chess.Board) *PositionCounter {
	pc := NewPositionCounter()
	replay := board.Clone()
	replay.SeekStart()
	pc.Add(GenerateZobristHash(replay))
	for replay.Cursor() < board.Cursor() && replay.Forward() {
		pc.Add(GenerateZobristHash(replay))
	}
	return pc
}
