// Package user is the domain of the people context.
package user

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

const (
	MaxNameLength  = 50
	MaxEmailLength = 100
	MinAge         = 0
	MaxAge         = 150

	// AdultAge is the age from which on a User counts as an adult.
	AdultAge = 18
)

var ErrValidation = errors.New("invalid user")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ID is the primary identifier of a User. It is assigned by the repository on admission,
// before that it is zero.
type ID int

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

type User struct {
	ID    ID
	Name  string `validate:"required"`
	Email string `validate:"required"`
	Age   int    `validate:"gte=0,lte=150"`
	Role  Role   `validate:"oneof=user admin guest"`

	CreatedAt time.Time
}

// Option changes how New constructs a User.
type Option func(*options)

type options struct {
	role  Role
	clock func() time.Time
}

// WithRole sets the role of the new User. Without it, the User gets RoleUser.
func WithRole(role Role) Option {
	return func(o *options) {
		o.role = role
	}
}

// WithClock replaces time.Now as the source of CreatedAt.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New returns a valid User or an error wrapping ErrValidation.
// Name and email are copied as given. If they are longer than their maximum length they are normalised and cut, this is not an error.
func New(name string, email string, age int, opts ...Option) (User, error) {
	o := options{
		role:  RoleUser,
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(&o)
	}

	usr := User{
		ID:        0,
		Name:      truncate(name, MaxNameLength-1),
		Email:     truncate(email, MaxEmailLength-1),
		Age:       age,
		Role:      o.role,
		CreatedAt: o.clock().UTC(),
	}

	if err := usr.Validate(); err != nil {
		return User{}, err
	}

	return usr, nil
}

// Validate checks the invariants of u. It is used on construction and before every update.
func (u User) Validate() error {
	err := validate.Struct(u)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

func (u User) IsAdult() bool {
	return u.Age >= AdultAge
}

func (u User) String() string {
	return fmt.Sprintf("User{id=%d, name=%s, age=%d}", u.ID, u.Name, u.Age)
}

// truncate cuts s to at most maxRunes runes. A string within the limit is returned unchanged.
// A longer one is NFC normalised first, so a character and its combining marks count as one rune where possible.
// Bytes that are not valid UTF-8 are kept and count as one rune each.
func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	s = norm.NFC.String(s)

	end := 0
	for range maxRunes {
		if end >= len(s) {
			break
		}

		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}

	return s[:end]
}
