package domain

// Credentials is the sealed set of ways a caller can prove identity. The
// choice between password and refresh-token authentication is made once,
// when the request is parsed, and carried as a concrete variant from there.
type Credentials interface {
	isCredentials()
}

// PasswordCredentials authenticates with a username (email) and password.
type PasswordCredentials struct {
	Username string
	Password string
}

func (PasswordCredentials) isCredentials() {}

// RefreshCredentials authenticates with a previously issued refresh token.
type RefreshCredentials struct {
	Token string
}

func (RefreshCredentials) isCredentials() {}
