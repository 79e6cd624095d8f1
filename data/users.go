package data

import (
	"crypto/sha256"
	"time"

	"github.com/emzola/shelfwise/internal/validator"
)

var AnonymousUser = &User{}

// IsAnonymous checks if a user instance is the anonymous user.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// User defines a user model. Writers and readers share the same table.
type User struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"-"`
	Profile   string    `json:"profile,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Activated bool      `json:"activated"`
	Version   int32     `json:"-"`
}

// WriterSummary defines the writer details attached to discovery results.
type WriterSummary struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Profile        string `json:"profile,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
	FollowersCount int64  `json:"followers_count"`
}

// ActorSummary defines the minimal user details joined onto feed activities.
type ActorSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

const ScopeAuthentication = "authentication"

// TokenHash returns the SHA-256 hash under which a plaintext token is stored.
func TokenHash(tokenPlaintext string) []byte {
	hash := sha256.Sum256([]byte(tokenPlaintext))
	return hash[:]
}

func ValidateTokenPlaintext(v *validator.Validator, tokenPlaintext string) {
	v.Check(tokenPlaintext != "", "token", "must be provided")
	v.Check(len(tokenPlaintext) == 26, "token", "must be 26 bytes long")
}
