package user

import "github.com/SergeyParamoshkin/blog/internal/model"

// AuthorityUser is the only authority ever granted.
const AuthorityUser = "user"

// Capabilities is what an authenticated principal may do. Every account
// is active; there is no expiry or locking.
type Capabilities struct {
	Authorities           []string
	AccountNonExpired     bool
	AccountNonLocked      bool
	CredentialsNonExpired bool
	Enabled               bool
}

func Policy(_ *model.User) Capabilities {
	return Capabilities{
		Authorities:           []string{AuthorityUser},
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
		Enabled:               true,
	}
}

// Username is the login name of u.
func Username(u *model.User) string {
	return u.Email
}
