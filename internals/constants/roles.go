package constants

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Locals key under which the session middleware stashes the verified
// session for the handler.
const LocalsSession = "session"

// Cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// Login pages the frontend should send unauthorized clients to.
const (
	AdminLoginPath   = "/admin/login"
	StudentLoginPath = "/student/login"
)
