package models

// User is an operator account. No HTTP endpoint reads or writes users; the
// type exists so every store backend exposes the same interface.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// NewUser holds the fields of a user to create. Password is expected to be a hash.
type NewUser struct {
	Username string
	Password string
}

// StringPtr returns nil for an empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
