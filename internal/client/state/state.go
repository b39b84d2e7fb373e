package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/client/models"
	"github.com/dmitrijs2005/cosmospt/internal/client/repositories/metadata"
)

const snapshotPrefix = "catalog:"

// API is the part of client.Client the state loads from.
type API interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	Catalog(ctx context.Context, collection string) ([]json.RawMessage, error)
}

type AppState struct {
	User         *Source[*models.User]
	Quizzes      *Source[[]models.Quiz]
	Missions     *Source[[]models.Mission]
	Destinations *Source[[]models.Destination]
	Vehicles     *Source[[]models.Vehicle]
	Labs         *Source[[]models.Lab]
}

// New wires the sources for userID. snapshots may be nil, in which case
// catalogs are neither snapshotted nor served offline.
func New(api API, snapshots metadata.Repository, userID string, policy RetryPolicy) *AppState {
	return &AppState{
		User: NewSource(func(ctx context.Context) (*models.User, error) {
			return api.GetUser(ctx, userID)
		}, policy),
		Quizzes:      catalogSource[models.Quiz](api, snapshots, "quizzes", policy),
		Missions:     catalogSource[models.Mission](api, snapshots, "missions", policy),
		Destinations: catalogSource[models.Destination](api, snapshots, "destinations", policy),
		Vehicles:     catalogSource[models.Vehicle](api, snapshots, "vehicles", policy),
		Labs:         catalogSource[models.Lab](api, snapshots, "labs", policy),
	}
}

// Invalidate drops every cached value.
func (s *AppState) Invalidate() {
	s.User.Invalidate()
	s.Quizzes.Invalidate()
	s.Missions.Invalidate()
	s.Destinations.Invalidate()
	s.Vehicles.Invalidate()
	s.Labs.Invalidate()
}

func catalogSource[T any](api API, snapshots metadata.Repository, name string, policy RetryPolicy) *Source[[]T] {
	src := NewSource(func(ctx context.Context) ([]T, error) {
		docs, err := api.Catalog(ctx, name)
		if err != nil {
			return nil, err
		}
		items, err := decodeAll[T](docs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if snapshots != nil {
			if err := metadata.SetJSON(ctx, snapshots, snapshotPrefix+name, docs); err != nil {
				return nil, err
			}
		}
		return items, nil
	}, policy)

	if snapshots == nil {
		return src
	}
	return src.WithFallback(func(ctx context.Context) ([]T, bool, error) {
		var docs []json.RawMessage
		ok, err := metadata.GetJSON(ctx, snapshots, snapshotPrefix+name, &docs)
		if err != nil || !ok {
			return nil, false, err
		}
		items, err := decodeAll[T](docs)
		if err != nil {
			return nil, false, fmt.Errorf("%s snapshot: %w", name, err)
		}
		return items, true, nil
	})
}

func decodeAll[T any](docs []json.RawMessage) ([]T, error) {
	items := make([]T, 0, len(docs))
	for _, d := range docs {
		var item T
		if err := json.Unmarshal(d, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
