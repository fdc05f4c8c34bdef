package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store := NewFileStore(path)

	// Missing file reads as a logged-out session, not an error.
	creds, err := store.Load()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if creds != (Credentials{}) {
		t.Fatalf("expected empty credentials, got %+v", creds)
	}

	want := Credentials{Access: "a", Refresh: "r", MidtransClientKey: "SB-Mid-client-k"}
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Fatalf("credentials file should be user-only, got %v", info.Mode().Perm())
		}
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clearing twice should be a no-op: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("credentials file should be gone after clear")
	}
}
