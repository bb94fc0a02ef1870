package domain

// Session is present only while a user is authenticated against the remote
// store. A nil *Session means unauthenticated.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
}

type SessionState string

const (
	SessionUnknown         SessionState = "unknown"
	SessionAuthenticated   SessionState = "authenticated"
	SessionUnauthenticated SessionState = "unauthenticated"
)
