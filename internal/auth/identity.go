package auth

// Identity is the minimal user-identifying pair attached to every
// authorized request. It carries facts only, no session internals.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}
