// Package preset provides built-in dough formulas.
package preset

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/engine"
	"github.com/hammamikhairi/doughcalc/internal/logger"
)

// Compile-time interface check.
var _ domain.PresetSource = (*MemorySource)(nil)

// DefaultID names the preset that mirrors domain.DefaultRecipe.
const DefaultID = "classic"

type preset struct {
	summary domain.PresetSummary
	recipe  domain.Recipe
}

// MemorySource holds presets in memory. Safe for concurrent reads.
type MemorySource struct {
	mu      sync.RWMutex
	presets map[string]*preset
	log     *logger.Logger
}

// NewMemorySource creates a preset source preloaded with built-in formulas.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{
		presets: make(map[string]*preset),
		log:     log,
	}
	src.seed()
	return src
}

// List returns summaries of all presets, sorted by name.
func (s *MemorySource) List(ctx context.Context) ([]domain.PresetSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all presets, count=%d", len(s.presets))

	out := make([]domain.PresetSummary, 0, len(s.presets))
	for _, p := range s.presets {
		out = append(out, p.summary)
	}
	sortSummaries(out)
	return out, nil
}

// Get returns a copy of the preset recipe, so edits never reach the catalog.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.presets[id]
	if !ok {
		s.log.Debug("preset not found: %s", id)
		return nil, domain.ErrNotFound
	}
	r := p.recipe.Clone()
	return &r, nil
}

// Add registers a preset. Weights are derived before it is stored.
func (s *MemorySource) Add(ctx context.Context, summary domain.PresetSummary, r domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.presets[summary.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.put(summary, r)
	s.log.Info("preset added: %s", summary.Name)
	return nil
}

// Search returns presets whose name, description or tags contain the query.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.PresetSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching presets for: %s", q)

	var out []domain.PresetSummary
	for _, p := range s.presets {
		if matches(p.summary, q) {
			out = append(out, p.summary)
		}
	}
	sortSummaries(out)
	return out, nil
}

func matches(p domain.PresetSummary, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func sortSummaries(out []domain.PresetSummary) {
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
}

// put stores a preset. Callers hold the write lock.
func (s *MemorySource) put(summary domain.PresetSummary, r domain.Recipe) {
	s.presets[summary.ID] = &preset{
		summary: summary,
		recipe:  engine.Recalculate(r),
	}
}
