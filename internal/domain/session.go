package domain

// Session is the current authenticated identity. Exactly one session is
// active at a time; it is mirrored to durable local storage so a restart
// resumes without re-authenticating.
type Session struct {
	Username string
	Token    string
}
