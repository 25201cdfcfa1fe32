package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/atmbank/atm-client/internal/core/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// fieldMessages maps struct field + failed tag to the exact text shown to the
// user. Constraints without an entry fall back to a generated message.
var fieldMessages = map[string]string{
	"RegisterInput.Account.gte": "Account number must be at least 5 digits",
	"RegisterInput.Name.min":    "Please enter a valid name",
	"RegisterInput.PIN.gte":     "PIN must be exactly 4 digits",
	"RegisterInput.PIN.lte":     "PIN must be exactly 4 digits",
	"RegisterInput.Balance.gte": "Initial deposit must be 0 or greater",
	"LoginInput.Account.gt":     "Please enter a valid account number",
	"LoginInput.PIN.gte":        "Please enter a valid PIN (4-6 digits)",
	"LoginInput.PIN.lte":        "Please enter a valid PIN (4-6 digits)",
}

// checkInput validates an orchestrator input DTO against its struct tags and
// converts the first violation into a *domain.ValidationError carrying a
// user-facing message. The short-circuit guarantees no request is sent on
// invalid input.
func checkInput(in any) *domain.ValidationError {
	validateOnce.Do(func() {
		validate = validator.New()
	})

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return &domain.ValidationError{Message: err.Error()}
	}

	fe := ve[0]
	return &domain.ValidationError{
		Field:   strings.ToLower(fe.Field()),
		Message: fieldMessage(fe),
	}
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.StructNamespace()+"."+fe.Tag()]; ok {
		return msg
	}

	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
