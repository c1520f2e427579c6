package services

import "sync"

// UserLocker hands out one mutex per username so trades and funds transfers
// for the same user serialize, keeping position reads used for sell
// validation consistent with concurrently committing trades.
type UserLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUserLocker() *UserLocker {
	return &UserLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *UserLocker) Get(username string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.locks[username]; !exists {
		l.locks[username] = &sync.Mutex{}
	}
	return l.locks[username]
}
