package models

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ErrayDineri/LMStudioAPI/internal/lmstudio"
)

// fakeClient emulates the lifecycle API with an in-memory loaded set.
type fakeClient struct {
	loaded  []lmstudio.Model
	listErr error
	loadErr error
}

func (f *fakeClient) ListLoaded(ctx context.Context) ([]lmstudio.Model, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]lmstudio.Model(nil), f.loaded...), nil
}

func (f *fakeClient) Load(ctx context.Context, modelKey string) (lmstudio.Model, error) {
	if f.loadErr != nil {
		return lmstudio.Model{}, f.loadErr
	}
	m := lmstudio.Model{Key: modelKey, State: "loaded"}
	f.loaded = append(f.loaded, m)
	return m, nil
}

func (f *fakeClient) Unload(ctx context.Context, modelKey string) error {
	for i, m := range f.loaded {
		if m.Key == modelKey {
			f.loaded = append(f.loaded[:i], f.loaded[i+1:]...)
			return nil
		}
	}
	return &lmstudio.RequestError{StatusCode: 404, Body: "model not loaded"}
}

func newTestManager(c LifecycleClient) *Manager {
	return New(c, zerolog.Nop())
}

func TestList(t *testing.T) {
	mgr := newTestManager(&fakeClient{loaded: []lmstudio.Model{
		{Key: "m1", DisplayName: "Model One"},
		{Key: "m2"},
	}})
	list, err := mgr.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len=%d", len(list))
	}
	if list[0].DisplayName != "Model One" {
		t.Fatalf("unexpected: %+v", list[0])
	}
	// Display name falls back to the key.
	if list[1].DisplayName != "m2" {
		t.Fatalf("unexpected: %+v", list[1])
	}
}

func TestList_ConnectivityErrorIsUnavailable(t *testing.T) {
	mgr := newTestManager(&fakeClient{listErr: errors.New("connection refused")})
	_, err := mgr.List(context.Background())
	if !IsServerUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	fc := &fakeClient{}
	mgr := newTestManager(fc)
	info, err := mgr.Load(context.Background(), "m1", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if info.Key != "m1" || info.DisplayName != "m1" {
		t.Fatalf("unexpected: %+v", info)
	}
}

func TestLoad_ExclusiveLeavesExactlyOneModel(t *testing.T) {
	fc := &fakeClient{loaded: []lmstudio.Model{{Key: "old1"}, {Key: "old2"}}}
	mgr := newTestManager(fc)
	if _, err := mgr.Load(context.Background(), "new", true); err != nil {
		t.Fatalf("Load: %v", err)
	}
	list, err := mgr.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Key != "new" {
		t.Fatalf("expected exactly the new model, got %+v", list)
	}
}

func TestLoad_ServerRejectionIsLoadFailed(t *testing.T) {
	fc := &fakeClient{loadErr: &lmstudio.RequestError{StatusCode: 404, Body: "unknown model"}}
	mgr := newTestManager(fc)
	_, err := mgr.Load(context.Background(), "nope", false)
	if !IsLoadFailed(err) {
		t.Fatalf("expected load-failed error, got %v", err)
	}
}

func TestLoad_ConnectivityErrorIsUnavailable(t *testing.T) {
	fc := &fakeClient{loadErr: errors.New("connection refused")}
	mgr := newTestManager(fc)
	_, err := mgr.Load(context.Background(), "m1", false)
	if !IsServerUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestUnload(t *testing.T) {
	fc := &fakeClient{loaded: []lmstudio.Model{{Key: "m1"}}}
	mgr := newTestManager(fc)
	if err := mgr.Unload(context.Background(), "m1"); err != nil {
		t.Fatalf("Unload: %v", err)
	}
	if err := mgr.Unload(context.Background(), "m1"); !IsLoadFailed(err) {
		t.Fatalf("expected load-failed error, got %v", err)
	}
}

func TestUnloadAll_ThenListEmpty(t *testing.T) {
	fc := &fakeClient{loaded: []lmstudio.Model{{Key: "m1"}, {Key: "m2"}, {Key: "m3"}}}
	mgr := newTestManager(fc)
	unloaded, err := mgr.UnloadAll(context.Background())
	if err != nil {
		t.Fatalf("UnloadAll: %v", err)
	}
	if len(unloaded) != 3 {
		t.Fatalf("unloaded=%v", unloaded)
	}
	list, err := mgr.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

func TestUnloadAll_ListFailureYieldsEmptySweep(t *testing.T) {
	mgr := newTestManager(&fakeClient{listErr: errors.New("connection refused")})
	unloaded, err := mgr.UnloadAll(context.Background())
	if err != nil {
		t.Fatalf("UnloadAll: %v", err)
	}
	if len(unloaded) != 0 {
		t.Fatalf("unloaded=%v", unloaded)
	}
}
