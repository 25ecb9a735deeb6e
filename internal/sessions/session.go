package sessions

import "time"

// Session is the server-side record behind a client's session cookie.
// UserID is nil until a login binds the session to a user.
type Session struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    *int64    `bson:"user_id,omitempty" json:"user_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// Authenticated reports whether a user is bound to the session.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != nil
}

func (s *Session) expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
