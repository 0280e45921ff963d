package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/stint/internal/domain/catalog"
	"github.com/rpggio/stint/internal/domain/timeline"
)

// Store is a mock for repository.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Load(ctx context.Context, user string) (*timeline.Log, *catalog.Catalog, error) {
	args := m.Called(ctx, user)
	var log *timeline.Log
	var cat *catalog.Catalog
	if v, ok := args.Get(0).(*timeline.Log); ok {
		log = v
	}
	if v, ok := args.Get(1).(*catalog.Catalog); ok {
		cat = v
	}
	return log, cat, args.Error(2)
}

func (m *Store) Save(ctx context.Context, user string, log *timeline.Log, cat *catalog.Catalog) (string, error) {
	args := m.Called(ctx, user, log, cat)
	return args.String(0), args.Error(1)
}

func (m *Store) DefaultUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
