package store

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/parkwise/parking-client/internal/core/domain"
)

func testCredential() domain.Credential {
	return domain.Credential{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		User: &domain.UserSummary{
			ID:       1,
			Username: "alice",
			Role:     domain.RoleUser,
		},
	}
}

func TestFile_RoundTrip(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "creds.json"), "")

	want := testCredential()
	if err := f.Set(want); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := f.Get()
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken {
		t.Fatalf("tokens did not round-trip: %+v", got)
	}
	if got.User == nil || *got.User != *want.User {
		t.Fatalf("user did not round-trip: %+v", got.User)
	}
}

func TestFile_MissingFileIsEmptyCredential(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "creds.json"), "")

	got, err := f.Get()
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.AccessToken != "" || got.RefreshToken != "" || got.User != nil {
		t.Fatalf("expected empty credential, got %+v", got)
	}
}

func TestFile_SetMergesPartial(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "creds.json"), "")

	if err := f.Set(testCredential()); err != nil {
		t.Fatalf("initial Set: %v", err)
	}
	// A refresh stores only the new access token.
	if err := f.Set(domain.Credential{AccessToken: "access-789"}); err != nil {
		t.Fatalf("partial Set: %v", err)
	}

	got, _ := f.Get()
	if got.AccessToken != "access-789" {
		t.Fatalf("access token = %q, want refreshed value", got.AccessToken)
	}
	if got.RefreshToken != "refresh-456" || got.User == nil {
		t.Fatalf("partial set dropped surviving fields: %+v", got)
	}
}

func TestFile_ClearRemovesBackingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	f := NewFile(path, "")

	_ = f.Set(testCredential())
	if err := f.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("backing file still exists after Clear")
	}

	got, err := f.Get()
	if err != nil || got.AccessToken != "" || got.User != nil {
		t.Fatalf("expected empty credential after Clear, got %+v (%v)", got, err)
	}

	// Clearing again is a no-op, not an error.
	if err := f.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestFile_CorruptFileIsDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seeding corrupt file: %v", err)
	}

	f := NewFile(path, "")
	got, err := f.Get()
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.AccessToken != "" || got.User != nil {
		t.Fatalf("corrupt file must read as empty, got %+v", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("corrupt file should have been removed")
	}
}

func TestFile_SealedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	f := NewFile(path, "hunter2")

	want := testCredential()
	if err := f.Set(want); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	// The on-disk bytes must not contain the plaintext token.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading sealed file: %v", err)
	}
	if string(raw) == "" || containsToken(raw, want.AccessToken) {
		t.Fatalf("sealed file leaks plaintext token")
	}

	got, err := f.Get()
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.User == nil {
		t.Fatalf("sealed credential did not round-trip: %+v", got)
	}
}

func TestFile_WrongPassphraseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := NewFile(path, "right").Set(testCredential()); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	if _, err := NewFile(path, "wrong").Get(); err == nil {
		t.Fatalf("expected error opening with wrong passphrase")
	}

	// The sealed file must survive the failed attempt.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("sealed file was removed on bad passphrase: %v", err)
	}
}

func TestMemory_Contract(t *testing.T) {
	m := NewMemory()

	if err := m.Set(testCredential()); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := m.Set(domain.Credential{AccessToken: "next"}); err != nil {
		t.Fatalf("partial Set: %v", err)
	}

	got, _ := m.Get()
	if got.AccessToken != "next" || got.RefreshToken != "refresh-456" {
		t.Fatalf("memory merge broken: %+v", got)
	}

	_ = m.Clear()
	got, _ = m.Get()
	if got.AccessToken != "" || got.User != nil {
		t.Fatalf("memory clear broken: %+v", got)
	}
}

func containsToken(raw []byte, token string) bool {
	return bytes.Contains(raw, []byte(token))
}
