package lib

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	Validator *validator.Validate
}

// NewValidator returns a validator that additionally understands the "address" tag for account addresses.
func NewValidator() *CustomValidator {
	v := validator.New()
	// registering a fixed tag name with a valid func never fails
	_ = v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return ethcommon.IsHexAddress(fl.Field().String())
	})
	return &CustomValidator{Validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.Validator.Struct(i)
}
