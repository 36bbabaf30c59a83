package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
)

type stubStore struct {
	cred domain.Credential
}

func (s *stubStore) Get() (domain.Credential, error) {
	return s.cred, nil
}

func (s *stubStore) Set(partial domain.Credential) error {
	s.cred = s.cred.Merge(partial)
	return nil
}

func (s *stubStore) Clear() error {
	s.cred = domain.Credential{}
	return nil
}

func testUser(role string) *domain.UserSummary {
	return &domain.UserSummary{ID: 1, Username: "alice", Role: role}
}

func TestSession_LoginDerivesState(t *testing.T) {
	s := NewSession(&stubStore{}, zerolog.Nop())

	if err := s.Set(domain.Credential{
		AccessToken:  "tok",
		RefreshToken: "ref",
		User:         testUser(domain.RoleUser),
	}); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	state := s.State()
	if !state.Authenticated {
		t.Fatalf("expected authenticated state")
	}
	if state.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %q", state.Role)
	}
	if state.User == nil || state.User.Username != "alice" {
		t.Fatalf("unexpected user: %+v", state.User)
	}
}

func TestSession_TokenWithoutUserIsUnauthenticated(t *testing.T) {
	s := NewSession(&stubStore{}, zerolog.Nop())

	if err := s.Set(domain.Credential{AccessToken: "tok"}); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if s.State().Authenticated {
		t.Fatalf("token without cached user must not be authenticated")
	}
}

func TestSession_RoundTrip(t *testing.T) {
	s := NewSession(&stubStore{}, zerolog.Nop())

	want := domain.Credential{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         testUser(domain.RoleAdmin),
	}
	if err := s.Set(want); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := s.Get()
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

func TestSession_ClearResetsState(t *testing.T) {
	s := NewSession(&stubStore{}, zerolog.Nop())
	_ = s.Set(domain.Credential{AccessToken: "tok", RefreshToken: "ref", User: testUser(domain.RoleUser)})

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}

	cred, _ := s.Get()
	if cred.AccessToken != "" || cred.RefreshToken != "" || cred.User != nil {
		t.Fatalf("expected fully cleared credential, got %+v", cred)
	}
	if s.State().Authenticated {
		t.Fatalf("cleared session must report unauthenticated")
	}
}

func TestSession_SubscribersNotified(t *testing.T) {
	s := NewSession(&stubStore{}, zerolog.Nop())

	var states []ports.SessionState
	cancel := s.Subscribe(func(state ports.SessionState) {
		states = append(states, state)
	})

	_ = s.Set(domain.Credential{AccessToken: "tok", User: testUser(domain.RoleUser)})
	_ = s.Clear()

	if len(states) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(states))
	}
	if !states[0].Authenticated || states[1].Authenticated {
		t.Fatalf("unexpected notification sequence: %+v", states)
	}

	cancel()
	_ = s.Set(domain.Credential{AccessToken: "tok2", User: testUser(domain.RoleUser)})
	if len(states) != 2 {
		t.Fatalf("cancelled subscriber still notified")
	}
}

func TestSession_TokenExpiryFromJWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":  exp.Unix(),
		"role": "user",
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	s := NewSession(&stubStore{}, zerolog.Nop())
	_ = s.Set(domain.Credential{AccessToken: token, User: testUser(domain.RoleUser)})

	got := s.State().TokenExpiry
	if !got.Equal(exp) {
		t.Fatalf("token expiry = %v, want %v", got, exp)
	}
}

func TestSession_OpaqueTokenHasNoExpiry(t *testing.T) {
	s := NewSession(&stubStore{}, zerolog.Nop())
	_ = s.Set(domain.Credential{AccessToken: "not-a-jwt", User: testUser(domain.RoleUser)})

	if !s.State().TokenExpiry.IsZero() {
		t.Fatalf("opaque token must yield zero expiry")
	}
	if !s.State().Authenticated {
		t.Fatalf("opaque token must still authenticate")
	}
}
