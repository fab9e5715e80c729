package game

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownGame = errors.New("unknown game")

type Factory func() Game

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a game loadable by name. Environments call it from init().
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("game: nil factory for " + name)
	}
	if _, dup := registry[name]; dup {
		panic("game: Register called twice for " + name)
	}
	registry[name] = factory
}

// Load returns a fresh instance of the named game.
func Load(name string) (Game, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (known games: %v)", ErrUnknownGame, name, Names())
	}
	return factory(), nil
}

// Names lists registered games in lexical order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
