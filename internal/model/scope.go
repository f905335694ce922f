package model

// Scope is the authenticated identity behind a socket connection.
type Scope struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// DisplayName returns Name, falling back to Username.
func (s Scope) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Username
}
