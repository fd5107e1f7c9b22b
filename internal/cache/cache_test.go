package cache

import (
	"testing"
)

func TestKeyIsStableAndShapeSensitive(t *testing.T) {
	a := Key([]int{2, 2}, 3, 64)
	b := Key([]int{2, 2}, 3, 64)
	if a != b {
		t.Fatalf("Key is not deterministic: %q != %q", a, b)
	}
	c := Key([]int{2, 3}, 3, 64)
	if a == c {
		t.Fatalf("Key collided for different table shapes")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	key := Key([]int{2, 2}, 3, 8)
	want := Stats{Tables: []int{2, 2}, Rounds: 3, WordBits: 8, Solved: true, Steps: 42, BestDepth: 3}
	if err := store.Save(key, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, found, err := store.Load(key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatalf("expected a cached entry")
	}
	if !got.Solved || got.Steps != 42 || got.RunCount != 1 {
		t.Fatalf("got %+v, want Solved=true Steps=42 RunCount=1", got)
	}
}

func TestSaveDoesNotRegressABetterResult(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	key := Key([]int{3, 3}, 4, 16)
	if err := store.Save(key, Stats{Solved: true, BestDepth: 10}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(key, Stats{Solved: false, BestDepth: 20}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, _, err := store.Load(key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Solved {
		t.Fatalf("a solved result must not be overwritten by an unsolved one")
	}
	if got.RunCount != 2 {
		t.Fatalf("RunCount = %d, want 2", got.RunCount)
	}
}

func TestLoadMissingKey(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	_, found, err := store.Load("does-not-exist")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Fatalf("expected found=false for a missing key")
	}
}
