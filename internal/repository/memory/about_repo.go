package memory

import (
	"context"
	"sync"
)

// AboutRepo хранит about-сообщение в памяти процесса.
type AboutRepo struct {
	mu      sync.RWMutex
	message string
}

func NewAboutRepo(initial string) *AboutRepo {
	return &AboutRepo{message: initial}
}

func (a *AboutRepo) Get(context.Context) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.message, nil
}

func (a *AboutRepo) Set(_ context.Context, message string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.message = message
	return a.message, nil
}
