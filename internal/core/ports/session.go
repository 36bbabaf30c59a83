package ports

import (
	"time"

	"github.com/parkwise/parking-client/internal/core/domain"
)

// SessionState is the derived authentication snapshot read by routing and
// view logic. It is recomputed from the credential store on every mutation.
type SessionState struct {
	Authenticated bool
	Role          string
	User          *domain.UserSummary
	// TokenExpiry is the access token's exp claim, zero when unknown.
	// Informational only; expiry is enforced by the server via 401.
	TokenExpiry time.Time
}

// Session is a CredentialStore that additionally derives SessionState and
// notifies subscribers whenever the underlying credential changes.
type Session interface {
	CredentialStore

	State() SessionState
	// Subscribe registers fn to run after every credential mutation. The
	// returned function cancels the subscription.
	Subscribe(fn func(SessionState)) (cancel func())
}
