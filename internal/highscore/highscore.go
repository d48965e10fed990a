// Package highscore maintains the persisted top-five score list.
package highscore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Size is the number of ranks kept in the list.
const Size = 5

// Persistence stores the ranked list. Implementations return exactly Size
// entries from LoadHighScores, using 0 for missing ranks.
type Persistence interface {
	LoadHighScores(ctx context.Context) ([]int, error)
	SaveHighScores(ctx context.Context, scores []int) error
}

// Insert adds current to the stored list and returns the new top Size scores,
// sorted descending. Missing ranks count as 0. stored is not modified.
func Insert(stored []int, current int) []int {
	all := make([]int, 0, Size+1)
	all = append(all, normalize(stored)...)
	all = append(all, current)
	sort.Sort(sort.Reverse(sort.IntSlice(all)))
	return all[:Size]
}

// MarkRank returns the index of score in list, or -1 if it is not there.
// The first match wins when several ranks hold the same value.
func MarkRank(list []int, score int) int {
	for i, v := range list {
		if v == score {
			return i
		}
	}
	return -1
}

// normalize pads or truncates a list to Size entries.
func normalize(stored []int) []int {
	out := make([]int, Size)
	copy(out, stored)
	return out
}

// Book reads and updates the list through a Persistence.
// Calls are serialized so concurrent rounds cannot lose an insertion.
type Book struct {
	mu    sync.Mutex
	store Persistence
}

// NewBook creates a book backed by store.
func NewBook(store Persistence) *Book {
	return &Book{store: store}
}

// Top returns the stored list, always Size entries long.
func (b *Book) Top(ctx context.Context) ([]int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored, err := b.store.LoadHighScores(ctx)
	if err != nil {
		return normalize(nil), fmt.Errorf("highscore: load: %w", err)
	}
	return normalize(stored), nil
}

// InsertScore loads the list, inserts current and persists the result.
// The returned list is valid even when saving fails.
func (b *Book) InsertScore(ctx context.Context, current int) ([]int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored, err := b.store.LoadHighScores(ctx)
	if err != nil {
		return Insert(nil, current), fmt.Errorf("highscore: load: %w", err)
	}

	top := Insert(stored, current)
	if err := b.store.SaveHighScores(ctx, top); err != nil {
		return top, fmt.Errorf("highscore: save: %w", err)
	}
	return top, nil
}

// Memory is an in-process Persistence. The zero value is ready to use.
type Memory struct {
	mu     sync.Mutex
	scores []int
}

// NewMemory returns a Memory preloaded with scores.
func NewMemory(scores ...int) *Memory {
	return &Memory{scores: normalize(scores)}
}

// LoadHighScores implements Persistence.
func (m *Memory) LoadHighScores(context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return normalize(m.scores), nil
}

// SaveHighScores implements Persistence.
func (m *Memory) SaveHighScores(_ context.Context, scores []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = normalize(scores)
	return nil
}

var _ Persistence = (*Memory)(nil)
