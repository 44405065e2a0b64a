package domain

// Identity is what an external identity provider vouches for after
// verifying a token.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}
