package roster

import (
	"context"
	"sync"

	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/statemachine"
)

// Session holds the state of one roster screen: its view parameters and the most recent
// contract list. Each fetch is tagged with a generation and only the latest generation may
// replace the list, so a slow response cannot overwrite a newer one.
type Session struct {
	mu         sync.Mutex
	engine     *Engine
	params     ViewParameters
	contracts  []models.ContractSummary
	generation uint64
	fetch      *statemachine.FetchFSM
}

// NewSession creates a session with default view parameters. A nil engine uses the default
// locale.
func NewSession(engine *Engine) *Session {
	if engine == nil {
		engine = defaultEngine
	}
	return &Session{
		engine:    engine,
		params:    DefaultViewParameters(),
		contracts: []models.ContractSummary{},
		fetch:     statemachine.NewFetchFSM(),
	}
}

func (s *Session) Params() ViewParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *Session) SetParams(params ViewParameters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = params
}

// BeginFetch starts a fetch and returns its generation. When the fetch cannot start, e.g.
// because ctx is already cancelled, the session is left untouched.
func (s *Session) BeginFetch(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fetch.Fetch(ctx); err != nil {
		return 0, err
	}
	s.generation++
	return s.generation, nil
}

// CompleteFetch stores contracts fetched by generation gen. It reports false, leaving the
// session untouched, when a newer fetch has started since.
func (s *Session) CompleteFetch(ctx context.Context, gen uint64, contracts []models.ContractSummary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	if err := s.fetch.Succeed(ctx); err != nil {
		return false
	}
	s.contracts = append([]models.ContractSummary(nil), contracts...)
	return true
}

// FailFetch records the failure of generation gen. Stale failures are dropped. The previous
// list is kept.
func (s *Session) FailFetch(ctx context.Context, gen uint64, cause error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	return s.fetch.Fail(ctx, cause) == nil
}

// View returns the current list with the view parameters applied
func (s *Session) View() []models.ContractSummary {
	s.mu.Lock()
	contracts, params := s.contracts, s.params
	s.mu.Unlock()
	return s.engine.Apply(contracts, params)
}

// Options returns the filter values of the current list
func (s *Session) Options() FilterOptions {
	s.mu.Lock()
	contracts := s.contracts
	s.mu.Unlock()
	return s.engine.Options(contracts)
}

// State returns the fetch state: idle, loading, ready or failed
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetch.Current()
}

// Err returns the cause of the last failed fetch
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetch.Err()
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}
