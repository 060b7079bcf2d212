package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestSlot_RefreshReplacesItems(t *testing.T) {
	calls := 0
	s := NewSlot(func(ctx context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return []string{"a"}, nil
		}
		return []string{"b", "c"}, nil
	})

	if s.Loaded() {
		t.Fatal("slot must start unloaded")
	}
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Items(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected items: %v", got)
	}

	// Every refresh is a full fetch, never an incremental merge.
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Items(); len(got) != 2 || got[0] != "b" {
		t.Fatalf("unexpected items after second refresh: %v", got)
	}
	if calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", calls)
	}
}

func TestSlot_FailedRefreshKeepsPriorItems(t *testing.T) {
	fail := false
	s := NewSlot(func(ctx context.Context) ([]int, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return []int{1, 2, 3}, nil
	})

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fail = true
	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("expected error surfaced to caller")
	}
	if got := s.Items(); len(got) != 3 {
		t.Fatalf("prior items must survive a failed refresh, got %v", got)
	}
	if !s.Loaded() {
		t.Fatal("slot must stay loaded after a failed refresh")
	}
}

func TestSlot_StaleResponseIsDiscarded(t *testing.T) {
	// Two overlapping refreshes; the first response arrives last and
	// must be discarded.
	firstStarted := make(chan struct{})
	release := make(chan struct{})
	call := 0
	var mu sync.Mutex

	s := NewSlot(func(ctx context.Context) ([]string, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-release
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Refresh(context.Background())
	}()

	<-firstStarted
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(release)
	wg.Wait()

	if got := s.Items(); len(got) != 1 || got[0] != "fresh" {
		t.Fatalf("stale response must not overwrite newer one, got %v", got)
	}
}
