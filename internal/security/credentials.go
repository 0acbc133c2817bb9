package security

import (
	"portal-go/internal/models"
)

// IdentityLookup resolves a username to its account.
type IdentityLookup interface {
	Lookup(username string) (models.User, bool)
}

// Directory is an IdentityLookup that can also enumerate accounts by role.
type Directory interface {
	IdentityLookup
	UsernamesByRole(role models.Role) []string
}

// StaticCredentials is a fixed, read-only credential table.
type StaticCredentials struct {
	order []string
	users map[string]models.User
}

func NewStaticCredentials(users []models.User) *StaticCredentials {
	c := &StaticCredentials{users: make(map[string]models.User, len(users))}
	for _, u := range users {
		if _, dup := c.users[u.Username]; !dup {
			c.order = append(c.order, u.Username)
		}
		c.users[u.Username] = u
	}
	return c
}

func (c *StaticCredentials) Lookup(username string) (models.User, bool) {
	u, ok := c.users[username]
	return u, ok
}

// UsernamesByRole lists usernames with the given role in table order.
func (c *StaticCredentials) UsernamesByRole(role models.Role) []string {
	names := []string{}
	for _, name := range c.order {
		if c.users[name].Role == role {
			names = append(names, name)
		}
	}
	return names
}

// Users returns every account in table order.
func (c *StaticCredentials) Users() []models.User {
	users := make([]models.User, 0, len(c.order))
	for _, name := range c.order {
		users = append(users, c.users[name])
	}
	return users
}

// Authenticate returns the account when username exists and password matches.
// An unknown username and a wrong password are indistinguishable to the caller.
func Authenticate(lookup IdentityLookup, username, password string) (models.User, bool) {
	u, ok := lookup.Lookup(username)
	if !ok || !ComparePasswords(u.Password, password) {
		return models.User{}, false
	}
	return u, true
}
