package validator

import (
	"staybook/pkg/logger"
	"staybook/pkg/model"
	"staybook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type PlaceValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPlaceValidator(log *logger.Logger) *PlaceValidator {
	return &PlaceValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *PlaceValidator) Validate(input *model.PlaceInput) error {
	return v.check("create", input)
}

func (v *PlaceValidator) ValidateUpdate(update *model.PlaceUpdate) error {
	return v.check("update", update)
}

func (v *PlaceValidator) check(operation string, s any) error {
	err := validation.Struct(v.validate, s)
	if err != nil {
		v.logger.Debug("Place input rejected", "operation", operation, "error", err)
	}
	return err
}
