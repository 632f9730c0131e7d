package memory

import (
	"context"
	"sync"
)

type LocalStore struct {
	mu    sync.RWMutex
	turns map[int64][]Turn
}

func NewLocalStore() *LocalStore {
	return &LocalStore{turns: make(map[int64][]Turn)}
}

func (x *LocalStore) Append(ctx context.Context, userID int64, turn Turn) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.turns[userID] = append(x.turns[userID], turn)
	return nil
}

func (x *LocalStore) Trim(ctx context.Context, userID int64, max int) error {
	if max < 0 {
		max = 0
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	turns := x.turns[userID]
	if len(turns) <= max {
		return nil
	}

	kept := make([]Turn, max)
	copy(kept, turns[len(turns)-max:])
	x.turns[userID] = kept
	return nil
}

func (x *LocalStore) Snapshot(ctx context.Context, userID int64) ([]Turn, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return append([]Turn(nil), x.turns[userID]...), nil
}
