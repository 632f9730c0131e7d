package telegram

import (
	"relaybot/sources/tracing"
	"sync"
	"time"
)

const typingInterval = 5 * time.Second

// TypingManager keeps the "typing" chat action alive while a completion is in flight.
type TypingManager struct {
	diplomat *Diplomat
	interval time.Duration
	active   map[int64]chan struct{}
	mu       sync.Mutex
}

func NewTypingManager(diplomat *Diplomat) *TypingManager {
	return &TypingManager{
		diplomat: diplomat,
		interval: typingInterval,
		active:   make(map[int64]chan struct{}),
	}
}

// Start returns the function that stops the loop. When a loop for the chat is already
// running, the returned function does nothing.
func (tm *TypingManager) Start(log *tracing.Logger, chatID int64) func() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if _, exists := tm.active[chatID]; exists {
		return func() {}
	}

	stopCh := make(chan struct{})
	tm.active[chatID] = stopCh

	go tm.typingLoop(log, chatID, stopCh)

	var once sync.Once
	return func() { once.Do(func() { tm.stop(chatID) }) }
}

func (tm *TypingManager) stop(chatID int64) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if stopCh, exists := tm.active[chatID]; exists {
		close(stopCh)
		delete(tm.active, chatID)
	}
}

func (tm *TypingManager) Active() int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.active)
}

func (tm *TypingManager) typingLoop(log *tracing.Logger, chatID int64, stopCh chan struct{}) {
	ticker := time.NewTicker(tm.interval)
	defer ticker.Stop()

	tm.diplomat.SendTyping(log, chatID)

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			tm.diplomat.SendTyping(log, chatID)
		}
	}
}
