package index

import (
	"fmt"
	"sync"
)

// Constructor builds an index over entries in the given space.
type Constructor func(space Space, entries []Entry) (Index, error)

var (
	registryMu   sync.RWMutex
	constructors = map[Backend]Constructor{}
)

// Register registers the constructor for a backend.
//
// Backend packages call this from an init() function.
func Register(backend Backend, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	constructors[backend] = c
}

// New builds an index with the registered backend.
func New(backend Backend, space Space, entries []Entry) (Index, error) {
	registryMu.RLock()
	c, ok := constructors[backend]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("index backend %s is not registered", backend)
	}
	return c(space, entries)
}
