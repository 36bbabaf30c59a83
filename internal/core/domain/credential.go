package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Credential is the durable session record: both tokens plus the cached user
// profile. Tokens are opaque strings — the client never inspects their shape
// beyond the optional expiry display. Absence of the access token or the user
// means unauthenticated.
type Credential struct {
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *UserSummary `json:"user,omitempty"`
}

// Merge overlays the non-empty fields of other onto c and returns the result.
func (c Credential) Merge(other Credential) Credential {
	if other.AccessToken != "" {
		c.AccessToken = other.AccessToken
	}
	if other.RefreshToken != "" {
		c.RefreshToken = other.RefreshToken
	}
	if other.User != nil {
		c.User = other.User
	}
	return c
}

// Authenticated reports whether the credential is usable for guarded calls.
func (c Credential) Authenticated() bool {
	return c.AccessToken != "" && c.User != nil
}

// Role returns the cached user's role, or "" when no user is cached.
func (c Credential) Role() string {
	if c.User == nil {
		return ""
	}
	return c.User.Role
}
