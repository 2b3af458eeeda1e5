package search

import (
	"fmt"
	"sync"

	"github.com/kayz/sonar/internal/config"
)

// EngineFactory builds an engine from the search config and a page fetcher.
type EngineFactory func(cfg config.SearchConfig, fetcher Fetcher) (Engine, error)

// Registry maps engine names to factories.
type Registry struct {
	factories map[string]EngineFactory
	mu        sync.RWMutex
}

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]EngineFactory)}

	r.Register(EngineSerpAPI, NewSerpAPIEngine)
	r.Register(EngineNaver, NewNaverEngine)
	r.Register(EngineCES, NewCESEngine)

	return r
}

func (r *Registry) Register(name string, factory EngineFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// CreateEngine builds the named engine.
func (r *Registry) CreateEngine(name string, cfg config.SearchConfig, fetcher Fetcher) (Engine, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
	return factory(cfg, fetcher)
}

// CreateAll builds every registered spec engine.
func (r *Registry) CreateAll(cfg config.SearchConfig, fetcher Fetcher) (map[string]Engine, error) {
	engines := make(map[string]Engine, len(EngineNames))
	for _, name := range EngineNames {
		engine, err := r.CreateEngine(name, cfg, fetcher)
		if err != nil {
			return nil, err
		}
		engines[name] = engine
	}
	return engines, nil
}
