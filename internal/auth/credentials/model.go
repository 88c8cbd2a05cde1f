package credentials

import "time"

// User is the durable identity record. Password carries plaintext only
// between SetPassword and the next store write; the write path hashes
// it into PasswordHash and clears it, so plaintext is never persisted.
type User struct {
	ID           string
	Email        string
	Password     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SetPassword stages a new plaintext password for the next write.
func (u *User) SetPassword(plaintext string) {
	u.Password = plaintext
}
