package memory

import (
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T, config Config) *Store[string] {
	t.Helper()
	s := New[string](config)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetSet(t *testing.T) {
	s := newTestStore(t, Config{Name: "test", DefaultTTL: time.Hour})

	if _, ok := s.Get("missing"); ok {
		t.Error("Expected miss for non-existent key")
	}

	if err := s.Set("key1", "value1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, ok := s.Get("key1")
	if !ok {
		t.Fatal("Expected hit after Set")
	}
	if value != "value1" {
		t.Errorf("Expected 'value1', got %v", value)
	}
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t, Config{Name: "test"})

	s.Set("key1", "value1")
	s.Delete("key1")
	s.Delete("never-set")

	if _, ok := s.Get("key1"); ok {
		t.Error("Expected miss after Delete")
	}
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t, Config{Name: "test"})
	s.Set("a", "1")
	s.Set("b", "2")

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Expected empty store, got %d entries", s.Len())
	}
}

func TestStore_TTL(t *testing.T) {
	s := newTestStore(t, Config{Name: "test", DefaultTTL: time.Hour})

	if err := s.SetWithTTL("short", "value", 30*time.Millisecond); err != nil {
		t.Fatalf("SetWithTTL failed: %v", err)
	}
	if _, ok := s.Get("short"); !ok {
		t.Fatal("Expected hit before expiry")
	}

	time.Sleep(60 * time.Millisecond)

	if _, ok := s.Get("short"); ok {
		t.Error("Expected miss after expiry")
	}
}

func TestStore_Cleanup(t *testing.T) {
	s := newTestStore(t, Config{
		Name:            "test",
		DefaultTTL:      20 * time.Millisecond,
		CleanupInterval: 10 * time.Millisecond,
	})
	s.Set("a", "1")
	s.Set("b", "2")

	deadline := time.Now().Add(time.Second)
	for s.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.Len() != 0 {
		t.Errorf("Expected expired entries to be swept, %d remain", s.Len())
	}
}

func TestStore_LRU(t *testing.T) {
	s := newTestStore(t, Config{Name: "test", MaxSize: 2})

	s.Set("a", "1")
	time.Sleep(2 * time.Millisecond)
	s.Set("b", "2")
	time.Sleep(2 * time.Millisecond)

	// Touch "a" so that "b" becomes least recently used
	s.Get("a")
	time.Sleep(2 * time.Millisecond)

	s.Set("c", "3")

	if _, ok := s.Get("b"); ok {
		t.Error("Expected 'b' to be evicted")
	}
	if _, ok := s.Get("a"); !ok {
		t.Error("Expected 'a' to survive")
	}
	if _, ok := s.Get("c"); !ok {
		t.Error("Expected 'c' to be stored")
	}
}

func TestStore_OverwriteDoesNotEvict(t *testing.T) {
	s := newTestStore(t, Config{Name: "test", MaxSize: 2})
	s.Set("a", "1")
	s.Set("b", "2")

	s.Set("a", "updated")

	if s.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", s.Len())
	}
	if v, _ := s.Get("a"); v != "updated" {
		t.Errorf("Expected 'updated', got %v", v)
	}
}

func TestStore_Concurrency(t *testing.T) {
	s := newTestStore(t, Config{Name: "test", MaxSize: 50})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := "key" + strconv.Itoa((n*100+j)%80)
				s.Set(key, "v")
				s.Get(key)
				if j%10 == 0 {
					s.Delete(key)
				}
			}
		}(i)
	}
	wg.Wait()

	if s.Len() > 50 {
		t.Errorf("Store exceeded MaxSize: %d", s.Len())
	}
}

func TestStore_KeyValidation(t *testing.T) {
	s := newTestStore(t, Config{Name: "test"})

	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid", "ACC000001", false},
		{"empty", "", true},
		{"whitespace", "has space", true},
		{"control", "tab\tkey", true},
		{"too long", strings.Repeat("k", 251), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Set(tt.key, "v")
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && err != ErrInvalidKey {
				t.Errorf("Expected ErrInvalidKey, got %v", err)
			}
		})
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t, Config{Name: "customers", MaxSize: 10})
	s.Set("a", "1")

	stats := s.Stats()
	if stats.Size != 1 || stats.MaxSize != 10 || stats.Capacity != 10 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if s.Name() != "customers" {
		t.Errorf("Expected name 'customers', got %q", s.Name())
	}

	unlimited := newTestStore(t, Config{})
	if unlimited.Stats().Capacity != -1 {
		t.Errorf("Expected unlimited capacity, got %d", unlimited.Stats().Capacity)
	}
	if unlimited.Name() != "memory" {
		t.Errorf("Expected default name 'memory', got %q", unlimited.Name())
	}
}

func TestStore_CloseTwice(t *testing.T) {
	s := New[int](Config{})
	s.Set("a", 1)

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if s.Len() != 0 {
		t.Error("Expected Close to clear data")
	}
}
