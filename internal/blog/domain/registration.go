package domain

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Password bounds enforced at registration, in characters.
const (
	MinPasswordLength = 4
	MaxPasswordLength = 8
)

// Registration is the body of an email sign up.
type Registration struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration fields. On failure it returns
// validation.Errors keyed by the json field names.
func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nickname,
			validation.Required,
			validation.RuneLength(1, MaxNicknameLength),
		),
		validation.Field(&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.RuneLength(MinPasswordLength, MaxPasswordLength),
		),
	)
}
