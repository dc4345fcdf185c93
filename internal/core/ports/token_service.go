package ports

// TokenService issues and verifies stateless bearer tokens. Tokens carry
// only the user id and a fixed validity window; nothing is stored
// server-side.
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}
