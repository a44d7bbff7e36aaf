package localstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Set("key", map[string]string{"hello": "world"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got map[string]string
	if err := s.Get("key", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got["hello"] != "world" {
		t.Errorf("got %v, want hello=world", got)
	}

	// Reopen from disk, the value must survive
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got = nil
	if err := reopened.Get("key", &got); err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got["hello"] != "world" {
		t.Errorf("after reopen got %v, want hello=world", got)
	}
}

func TestStoreMissingKey(t *testing.T) {
	s := newTestStore(t)

	var out string
	if err := s.Get("never-written", &out); err != ErrKeyNotFound {
		t.Errorf("got %v, want ErrKeyNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("key", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete("key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var out string
	if err := s.Get("key", &out); err != ErrKeyNotFound {
		t.Errorf("got %v, want ErrKeyNotFound after delete", err)
	}

	// Deleting a missing key is a no-op
	if err := s.Delete("key"); err != nil {
		t.Errorf("second delete: got %v, want nil", err)
	}
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := Open(path); err != ErrCorruptStore {
		t.Errorf("got %v, want ErrCorruptStore", err)
	}
}

func TestStoreSubscribe(t *testing.T) {
	s := newTestStore(t)

	events, cancel := s.Subscribe()
	defer cancel()

	if err := s.Set("key", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	select {
	case event := <-events:
		if event.Key != "key" {
			t.Errorf("event key = %q, want %q", event.Key, "key")
		}
	case <-time.After(time.Second):
		t.Fatal("no change event received")
	}
}

func TestStoreUnsubscribeClosesChannel(t *testing.T) {
	s := newTestStore(t)

	events, cancel := s.Subscribe()
	cancel()

	if _, ok := <-events; ok {
		t.Error("channel should be closed after unsubscribe")
	}

	// Publishing after unsubscribe must not panic
	if err := s.Set("key", "value"); err != nil {
		t.Fatalf("Set after unsubscribe: %v", err)
	}
}
