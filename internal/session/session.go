// Package session carries the identity of the signed-in user.
package session

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Guest is the display name used without an email.
const Guest = "Athlete"

// Context identifies the current user. It is passed explicitly to whoever
// needs it; nothing reads it from global state.
type Context struct {
	Email string
	Token string
}

func New(email string) Context {
	return Context{Email: strings.TrimSpace(email)}
}

// Anonymous reports whether no email is known.
func (c Context) Anonymous() bool { return c.Email == "" }

// DisplayName derives a greeting name from the local part of the email,
// "jane.doe@example.com" becomes "Jane.doe".
func (c Context) DisplayName() string {
	local, _, _ := strings.Cut(c.Email, "@")
	local = strings.TrimSpace(local)
	if local == "" {
		return Guest
	}
	r, size := utf8.DecodeRuneInString(local)
	return string(unicode.ToUpper(r)) + local[size:]
}

// ProfileKey is the settings key under which this user's profile is kept.
func (c Context) ProfileKey() string {
	if c.Email == "" {
		return "userProfile_guest"
	}
	return "userProfile_" + strings.ToLower(c.Email)
}
