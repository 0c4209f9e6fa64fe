package ports

import "github.com/warisan/heritage-api/internal/core/domain"

// TokenVerifier validates a bearer token statelessly and returns the claims
// embedded in it. No I/O is performed.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	TokenVerifier
	Issue(user *domain.User) (string, error)
}
