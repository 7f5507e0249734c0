package trip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks Params against struct tags before anything is sent to the
// backend. One shared instance; validator caches struct metadata internally.
var validate = validator.New()

// Params holds the trip parameters collected from the user. For a plan
// Destination is required; for a suggestion Location is.
type Params struct {
	Destination string    `json:"destination,omitempty" validate:"required_without=Location"`
	Location    string    `json:"location,omitempty" validate:"required_without=Destination"`
	Budget      float64   `json:"budget" validate:"gt=0"`
	People      int       `json:"people" validate:"gte=1"`
	Days        int       `json:"days" validate:"gte=1"`
	GroupType   GroupType `json:"groupType" validate:"oneof=friends couple family solo"`
}

// Validate reports the first problem with p as a user-facing message.
func (p Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return fmt.Errorf("invalid trip parameters: %s", describeFieldError(verrs[0]))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required_without":
		return "a destination or starting location is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
