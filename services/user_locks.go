package services

import "sync"

// 以使用者ID為單位的鎖，同一位使用者的購物車指令依序執行
// 不同使用者之間互不影響
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{
		locks: make(map[uint]*sync.Mutex),
	}
}

func (l *userLocks) lock(userID uint) func() {
	l.mu.Lock()
	userLock, ok := l.locks[userID]
	if !ok {
		userLock = &sync.Mutex{}
		l.locks[userID] = userLock
	}
	l.mu.Unlock()

	userLock.Lock()
	return userLock.Unlock
}
