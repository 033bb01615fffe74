package domain

// User is a dashboard account. PasswordHash holds a bcrypt hash, never a
// plaintext password.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}
