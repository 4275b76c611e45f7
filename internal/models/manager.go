// Package models delegates model lifecycle operations (list, load,
// unload) to the LM Studio lifecycle client. It performs no caching and
// no retries; every call goes straight to the server.
package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ErrayDineri/LMStudioAPI/internal/lmstudio"
	"github.com/ErrayDineri/LMStudioAPI/pkg/types"
)

// LifecycleClient is the subset of the LM Studio client the manager uses.
type LifecycleClient interface {
	ListLoaded(ctx context.Context) ([]lmstudio.Model, error)
	Load(ctx context.Context, modelKey string) (lmstudio.Model, error)
	Unload(ctx context.Context, modelKey string) error
}

// Manager wraps the lifecycle client with the service's load/unload/list
// semantics.
type Manager struct {
	client LifecycleClient
	log    zerolog.Logger
}

// New creates a Manager over the given client.
func New(client LifecycleClient, log zerolog.Logger) *Manager {
	return &Manager{client: client, log: log}
}

// List returns the models currently loaded on the server.
func (m *Manager) List(ctx context.Context) ([]types.ModelInfo, error) {
	loaded, err := m.client.ListLoaded(ctx)
	if err != nil {
		return nil, classify(err, "could not connect to LM Studio")
	}
	out := make([]types.ModelInfo, 0, len(loaded))
	for _, mod := range loaded {
		name := mod.DisplayName
		if name == "" {
			name = mod.Key
		}
		out = append(out, types.ModelInfo{Key: mod.Key, DisplayName: name})
	}
	return out, nil
}

// Load loads a model. With exclusive set, every other model is unloaded
// first; per-model failures during the sweep are ignored.
func (m *Manager) Load(ctx context.Context, modelKey string, exclusive bool) (types.ModelInfo, error) {
	if exclusive {
		unloaded, _ := m.UnloadAll(ctx)
		m.log.Debug().Strs("unloaded", unloaded).Str("model", modelKey).Msg("exclusive load sweep")
	}
	mod, err := m.client.Load(ctx, modelKey)
	if err != nil {
		return types.ModelInfo{}, classify(err, fmt.Sprintf("failed to load model %s", modelKey))
	}
	name := mod.DisplayName
	if name == "" {
		name = modelKey
	}
	m.log.Info().Str("model", modelKey).Bool("exclusive", exclusive).Msg("model loaded")
	return types.ModelInfo{Key: mod.Key, DisplayName: name}, nil
}

// Unload unloads a single model.
func (m *Manager) Unload(ctx context.Context, modelKey string) error {
	if err := m.client.Unload(ctx, modelKey); err != nil {
		return classify(err, fmt.Sprintf("failed to unload model %s", modelKey))
	}
	m.log.Info().Str("model", modelKey).Msg("model unloaded")
	return nil
}

// UnloadAll unloads every loaded model and returns the keys that were
// unloaded. A failed list yields an empty sweep, not an error.
func (m *Manager) UnloadAll(ctx context.Context) ([]string, error) {
	loaded, err := m.client.ListLoaded(ctx)
	if err != nil {
		return nil, nil
	}
	unloaded := make([]string, 0, len(loaded))
	for _, mod := range loaded {
		if err := m.client.Unload(ctx, mod.Key); err != nil {
			continue
		}
		unloaded = append(unloaded, mod.Key)
	}
	return unloaded, nil
}

// classify maps client errors to the manager's error taxonomy: non-2xx
// server answers are per-model failures, anything else is connectivity.
func classify(err error, detail string) error {
	var reqErr *lmstudio.RequestError
	if errors.As(err, &reqErr) {
		return ErrLoadFailed(fmt.Sprintf("%s: %v", detail, err))
	}
	return ErrServerUnavailable(fmt.Sprintf("%s: %v", detail, err))
}
