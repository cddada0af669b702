package lock

import (
	"sync"

	"github.com/apex/log"
)

// IDLocker hands out one mutex per key, so work for different users never blocks each other.
type IDLocker[K comparable] struct {
	mapMutex sync.Mutex
	idMap    map[K]*sync.Mutex
}

func NewIDLocker[K comparable]() *IDLocker[K] {
	return &IDLocker[K]{
		idMap: make(map[K]*sync.Mutex),
	}
}

func (l *IDLocker[K]) AcquireLock(id K) {
	l.mapMutex.Lock()
	idMutex, ok := l.idMap[id]
	if !ok {
		idMutex = &sync.Mutex{}
		l.idMap[id] = idMutex
	}
	l.mapMutex.Unlock()

	idMutex.Lock()
}

func (l *IDLocker[K]) ReleaseLock(id K) {
	l.mapMutex.Lock()
	m, ok := l.idMap[id]
	l.mapMutex.Unlock()

	if !ok {
		log.Errorf("ReleaseLock called on id (%v) with no mutex", id)
		return
	}

	m.Unlock()
}

func (l *IDLocker[K]) WithLock(id K, f func() error) error {
	l.AcquireLock(id)
	defer l.ReleaseLock(id)
	return f()
}
