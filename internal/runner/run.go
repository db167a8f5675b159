package runner

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/dietplanfit/internal/food"
	"github.com/cwbudde/dietplanfit/internal/genetic"
)

// State represents the current state of a run.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// RunConfig holds everything one optimization run needs.
type RunConfig struct {
	CatalogSize int
	Seed        int64
	Goals       genetic.Goals
	Allowed     food.AllergenSet
	Genetic     genetic.Config
	// RefineIters > 0 enables continuous portion refinement of the
	// winning plan for that many optimizer iterations.
	RefineIters int
}

// Validate applies every boundary check before any population work: a run
// is either rejected here or executes to a terminal state.
func (c RunConfig) Validate() error {
	if c.CatalogSize < int(food.NumCategories) {
		return fmt.Errorf("catalog size %d leaves categories empty (need at least %d)",
			c.CatalogSize, food.NumCategories)
	}
	if err := c.Goals.Validate(); err != nil {
		return err
	}
	if err := c.Genetic.Validate(); err != nil {
		return err
	}
	if c.RefineIters < 0 {
		return fmt.Errorf("refine iterations must not be negative, got %d", c.RefineIters)
	}
	return nil
}

// Run is one background optimization with its lifecycle metadata.
type Run struct {
	ID         string
	State      State
	Config     RunConfig
	Result     *genetic.Result
	Generation int
	BestSoFar  float64
	StartTime  time.Time
	EndTime    *time.Time
	Err        string

	done chan struct{}
}

// Done is closed when the run reaches a terminal state.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Manager owns the lifecycle of runs.
type Manager struct {
	mu          sync.RWMutex
	runs        map[string]*Run
	broadcaster *EventBroadcaster
}

// NewManager creates an empty run manager.
func NewManager() *Manager {
	return &Manager{
		runs:        make(map[string]*Run),
		broadcaster: NewEventBroadcaster(),
	}
}

// Start validates the config synchronously, registers a run and executes
// it in the background. The returned run's Done channel signals completion.
func (m *Manager) Start(cfg RunConfig) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	run := &Run{
		ID:        uuid.New().String(),
		State:     StatePending,
		Config:    cfg,
		StartTime: time.Now(),
		done:      make(chan struct{}),
	}

	m.mu.Lock()
	m.runs[run.ID] = run
	m.mu.Unlock()

	go m.execute(run.ID)
	return run, nil
}

// Get retrieves a run by ID.
func (m *Manager) Get(id string) (*Run, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[id]
	return run, exists
}

// List returns all known runs.
func (m *Manager) List() []*Run {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	return runs
}

// Update atomically updates a run using the provided function.
func (m *Manager) Update(id string, updateFn func(*Run)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[id]
	if !exists {
		return fmt.Errorf("run not found: %s", id)
	}

	updateFn(run)
	return nil
}

// Subscribe returns a channel of progress events for a run.
func (m *Manager) Subscribe(id string) chan ProgressEvent {
	return m.broadcaster.Subscribe(id)
}

// Unsubscribe releases a subscription obtained from Subscribe.
func (m *Manager) Unsubscribe(id string, ch chan ProgressEvent) {
	m.broadcaster.Unsubscribe(id, ch)
}
