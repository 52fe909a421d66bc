package validator

import (
	"staybook/pkg/logger"
	"staybook/pkg/model"
	"staybook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	return &UserValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *UserValidator) ValidateRegister(req *model.RegisterRequest) error {
	return v.check("register", req)
}

func (v *UserValidator) ValidateLogin(req *model.LoginRequest) error {
	return v.check("login", req)
}

// check never logs field values; request bodies carry passwords.
func (v *UserValidator) check(operation string, s any) error {
	err := validation.Struct(v.validate, s)
	if err != nil {
		v.logger.Debug("User input rejected", "operation", operation, "error", err)
	}
	return err
}
