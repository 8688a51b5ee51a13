package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	if _, ok := store.Get(ctx, "leaderboard:global"); ok {
		t.Fatal("expected miss on empty store")
	}

	store.Set(ctx, "leaderboard:global", 42)
	value, ok := store.Get(ctx, "leaderboard:global")
	if !ok || value != 42 {
		t.Fatalf("expected hit with 42, got %v ok=%v", value, ok)
	}

	store.Delete(ctx, "leaderboard:global")
	if _, ok := store.Get(ctx, "leaderboard:global"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "leaderboard:global", 1)
	store.Set(ctx, "leaderboard:league:norcal", 2)
	store.Set(ctx, "show:msg-nye", 3)

	store.DeletePrefix(ctx, "leaderboard:")

	if _, ok := store.Get(ctx, "leaderboard:global"); ok {
		t.Fatal("expected leaderboard keys dropped")
	}
	if _, ok := store.Get(ctx, "leaderboard:league:norcal"); ok {
		t.Fatal("expected leaderboard keys dropped")
	}
	if _, ok := store.Get(ctx, "show:msg-nye"); !ok {
		t.Fatal("expected unrelated key kept")
	}
}

func TestStore_GetOrLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return "entries", nil
	}

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "leaderboard:global", loader)
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if value != "entries" {
			t.Fatalf("unexpected value %v", value)
		}
	}
	if loads != 1 {
		t.Fatalf("expected single load, got %d", loads)
	}
}

func TestStore_GetOrLoadPropagatesError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	wantErr := errors.New("repository down")

	_, err := store.GetOrLoad(ctx, "leaderboard:global", func(context.Context) (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected load error, got %v", err)
	}

	if _, ok := store.Get(ctx, "leaderboard:global"); ok {
		t.Fatal("failed load must not populate the cache")
	}
}
