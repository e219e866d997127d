package tarot

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/repository"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var deckFS embed.FS

const (
	deckFile    = "data/major_arcana.yaml"
	spreadsFile = "data/spreads.yaml"
)

// EmbeddedStore колода и расклады, зашитые в бинарник
type EmbeddedStore struct {
	once    sync.Once
	cards   []domain.TarotCard
	layouts []domain.SpreadLayout
	byID    map[string]domain.SpreadLayout
	err     error
}

var _ repository.IDeckStore = (*EmbeddedStore)(nil)

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	if err := readYAML(deckFile, &s.cards); err != nil {
		s.err = err
		return
	}
	if err := readYAML(spreadsFile, &s.layouts); err != nil {
		s.err = err
		return
	}

	s.byID = make(map[string]domain.SpreadLayout, len(s.layouts))
	for _, layout := range s.layouts {
		if len(layout.Positions) > len(s.cards) {
			s.err = fmt.Errorf("spread %s needs %d cards, deck has %d", layout.ID, len(layout.Positions), len(s.cards))
			return
		}
		s.byID[layout.ID] = layout
	}
}

func readYAML(filename string, dest interface{}) error {
	raw, err := deckFS.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read embedded %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("parse embedded %s: %w", filename, err)
	}
	return nil
}

func (s *EmbeddedStore) Cards(_ context.Context) ([]domain.TarotCard, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.TarotCard(nil), s.cards...), nil
}

func (s *EmbeddedStore) Layouts(_ context.Context) ([]domain.SpreadLayout, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.SpreadLayout(nil), s.layouts...), nil
}

func (s *EmbeddedStore) Layout(_ context.Context, id string) (domain.SpreadLayout, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.SpreadLayout{}, s.err
	}
	layout, ok := s.byID[id]
	if !ok {
		return domain.SpreadLayout{}, fmt.Errorf("spread %q: %w", id, domain.ErrNotFound)
	}
	return layout, nil
}
