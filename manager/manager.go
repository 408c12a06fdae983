// Package manager keeps an administrator's working copy of each content list.
// Mutations go to the store first; the local mirror only changes once the
// store accepted them, so it never shows an edit that was not saved.
package manager

import (
	"context"

	"github.com/edugroup/site-api/utils/cache"
	"github.com/google/uuid"
)

// Backend is the store side of a managed list
type Backend[T, C, U any] interface {
	List(ctx context.Context) []T
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id uuid.UUID, p U) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Matcher selects rows of a list, e.g. a filters criterion
type Matcher[T any] interface {
	Match(row T) bool
}

// Manager mirrors one entity list. T is the row, C the create input and U
// the update patch.
type Manager[T, C, U any] struct {
	backend Backend[T, C, U]
	mirror  *cache.Mirror[uuid.UUID, T]
}

func New[T, C, U any](backend Backend[T, C, U], id func(T) uuid.UUID) *Manager[T, C, U] {
	return &Manager[T, C, U]{
		backend: backend,
		mirror:  cache.NewMirror(id),
	}
}

// Load replaces the mirror with the store's current list
func (m *Manager[T, C, U]) Load(ctx context.Context) []T {
	m.mirror.Replace(m.backend.List(ctx))
	return m.mirror.Values()
}

// Items returns the mirrored list, loading it first if needed
func (m *Manager[T, C, U]) Items(ctx context.Context) []T {
	if !m.mirror.Loaded() {
		return m.Load(ctx)
	}
	return m.mirror.Values()
}

func (m *Manager[T, C, U]) Get(id uuid.UUID) (T, bool) {
	return m.mirror.Get(id)
}

// Filtered returns the mirrored rows accepted by f, in list order
func (m *Manager[T, C, U]) Filtered(ctx context.Context, f Matcher[T]) []T {
	items := m.Items(ctx)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

func (m *Manager[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	row, err := m.backend.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	m.mirror.Set(*row)
	return row, nil
}

func (m *Manager[T, C, U]) Update(ctx context.Context, id uuid.UUID, p U) (*T, error) {
	row, err := m.backend.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	m.mirror.Set(*row)
	return row, nil
}

func (m *Manager[T, C, U]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.backend.Delete(ctx, id); err != nil {
		return err
	}
	m.mirror.Delete(id)
	return nil
}

// Funcs adapts plain functions to a Backend
type Funcs[T, C, U any] struct {
	ListFn   func(ctx context.Context) []T
	CreateFn func(ctx context.Context, in C) (*T, error)
	UpdateFn func(ctx context.Context, id uuid.UUID, p U) (*T, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) error
}

func (f Funcs[T, C, U]) List(ctx context.Context) []T { return f.ListFn(ctx) }

func (f Funcs[T, C, U]) Create(ctx context.Context, in C) (*T, error) { return f.CreateFn(ctx, in) }

func (f Funcs[T, C, U]) Update(ctx context.Context, id uuid.UUID, p U) (*T, error) {
	return f.UpdateFn(ctx, id, p)
}

func (f Funcs[T, C, U]) Delete(ctx context.Context, id uuid.UUID) error { return f.DeleteFn(ctx, id) }
