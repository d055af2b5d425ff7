package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/glossaryweb/glossary/internal/db"
	"github.com/glossaryweb/glossary/internal/glossary"
)

// ErrBadRequest is returned when a replace request names two different IDs.
var ErrBadRequest = errors.New("path id does not match body id")

// Store is the persistence the service needs. *db.Database satisfies it.
type Store interface {
	List(ctx context.Context) ([]*db.GlossaryItem, error)
	Get(ctx context.Context, id int64) (*db.GlossaryItem, error)
	Insert(ctx context.Context, item *db.GlossaryItem) error
	Update(ctx context.Context, item *db.GlossaryItem) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service implements the glossary operations on top of a Store.
type Service struct {
	Store Store
}

// NewService creates a new Service instance
func NewService(store Store) *Service {
	return &Service{Store: store}
}

// ToEntry maps a persisted item to its wire shape.
func ToEntry(item *db.GlossaryItem) glossary.Entry {
	return glossary.Entry{
		ID:         item.ID,
		Term:       item.Term,
		Definition: item.Definition,
	}
}

// List returns every entry ordered by term.
func (s *Service) List(ctx context.Context) ([]glossary.Entry, error) {
	items, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]glossary.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, ToEntry(item))
	}
	return entries, nil
}

// Get returns the entry with the given id, or db.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (glossary.Entry, error) {
	item, err := s.Store.Get(ctx, id)
	if err != nil {
		return glossary.Entry{}, err
	}
	return ToEntry(item), nil
}

// Create stores a new entry. The payload ID is ignored and the secret stays unset.
func (s *Service) Create(ctx context.Context, in glossary.Entry) (glossary.Entry, error) {
	item := &db.GlossaryItem{
		Term:       in.Term,
		Definition: in.Definition,
	}
	if err := s.Store.Insert(ctx, item); err != nil {
		return glossary.Entry{}, err
	}
	return ToEntry(item), nil
}

// Replace overwrites term and definition of the entry at id.
//
// If the row changes between read and write, existence is checked again:
// a vanished row reports db.ErrNotFound, otherwise the conflict is returned.
func (s *Service) Replace(ctx context.Context, id int64, in glossary.Entry) error {
	if id != in.ID {
		return fmt.Errorf("%w: %d != %d", ErrBadRequest, id, in.ID)
	}

	item, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}

	item.Term = in.Term
	item.Definition = in.Definition

	err = s.Store.Update(ctx, item)
	if errors.Is(err, db.ErrConflict) {
		exists, existsErr := s.Store.Exists(ctx, id)
		if existsErr != nil {
			return fmt.Errorf("%w (recheck failed: %v)", err, existsErr)
		}
		if !exists {
			return fmt.Errorf("glossary item %d: %w", id, db.ErrNotFound)
		}
	}
	return err
}

// Delete removes the entry at id, or returns db.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Store.Get(ctx, id); err != nil {
		return err
	}
	return s.Store.Delete(ctx, id)
}
