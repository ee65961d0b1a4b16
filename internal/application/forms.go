package application

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jiranismart/jirani-cli/internal/domain"
)

const (
	msgInvalidPhone      = "Enter a valid phone number (07... or +254...)."
	msgSelectRole        = "Please select your role to continue."
	msgShortPassword     = "Password must be at least 6 characters."
	msgPasswordMismatch  = "Passwords do not match."
	msgPhoneFirst        = "Enter phone first."
	msgIncompleteReset   = "Please complete all reset fields."
	msgShortNewPassword  = "New password must be at least 6 characters."
	msgRegistered        = "Registration successful. Please login to continue."
	msgCodeSent          = "Verification code sent. Check your phone and continue to Step 2."
	msgPasswordUpdated   = "Password updated successfully. You can now login."
	msgRoleMismatchFmt   = `This account is registered as "%s". Select that role to login.`
	msgMissingIssue      = "Describe the emergency first."
	msgMissingProduct    = "Product name is required."
	msgInvalidPrice      = "Price must be at least 1."
	msgInvalidStock      = "Stock quantity must be 0 or more."
	msgMissingSTKPhone   = "Enter the phone to charge."
	msgInvalidSTKAmount  = "Amount cannot be negative."
	msgUnknownCategory   = "Unknown category."
	msgNoSellerLocation  = "Seller location not available."
	msgFormFailedDefault = "Check the form and try again."
)

type LoginForm struct {
	Phone    string `validate:"ke_phone"`
	Role     string `validate:"required"`
	Password string `validate:"min=6"`
}

type RegisterForm struct {
	Name            string
	Phone           string `validate:"ke_phone"`
	Password        string `validate:"min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
	Role            string
	// BusinessCategory applies to sellers, Detail to bikers, agents and
	// mechanics.
	BusinessCategory string
	Detail           string
}

type ForgotForm struct {
	Phone string `validate:"required,ke_phone"`
}

type ResetForm struct {
	Phone              string `validate:"required,ke_phone"`
	Code               string `validate:"required"`
	NewPassword        string `validate:"required,min=6"`
	ConfirmNewPassword string `validate:"required,eqfield=NewPassword"`
}

type SOSForm struct {
	Issue          string `validate:"required"`
	Region         string
	Phone          string
	VehicleDetails string
}

type ProductInput struct {
	Name          string `validate:"required"`
	Category      string
	Price         string `validate:"required,numeric,gte_num=1"`
	StockQuantity string `validate:"required,numeric,gte_num=0"`
	Description   string
}

type SubscriptionForm struct {
	Phone string `validate:"required"`
	// Amount is nil when left blank, which charges the default fee.
	Amount *float64 `validate:"omitempty,gte=0"`
}

var formMessages = map[string]string{
	"LoginForm.Phone.ke_phone":             msgInvalidPhone,
	"LoginForm.Role.required":              msgSelectRole,
	"LoginForm.Password.min":               msgShortPassword,
	"RegisterForm.Phone.ke_phone":          msgInvalidPhone,
	"RegisterForm.Password.min":            msgShortPassword,
	"RegisterForm.ConfirmPassword.eqfield": msgPasswordMismatch,
	"ForgotForm.Phone.required":            msgPhoneFirst,
	"ForgotForm.Phone.ke_phone":            msgInvalidPhone,
	"ResetForm.Phone.ke_phone":             msgInvalidPhone,
	"ResetForm.NewPassword.min":            msgShortNewPassword,
	"ResetForm.ConfirmNewPassword.eqfield": msgPasswordMismatch,
	"SOSForm.Issue.required":               msgMissingIssue,
	"ProductInput.Name.required":           msgMissingProduct,
	"ProductInput.Price.required":          msgInvalidPrice,
	"ProductInput.Price.numeric":           msgInvalidPrice,
	"ProductInput.Price.gte_num":           msgInvalidPrice,
	"ProductInput.StockQuantity.required":  msgInvalidStock,
	"ProductInput.StockQuantity.numeric":   msgInvalidStock,
	"ProductInput.StockQuantity.gte_num":   msgInvalidStock,
	"SubscriptionForm.Phone.required":      msgMissingSTKPhone,
	"SubscriptionForm.Amount.gte":          msgInvalidSTKAmount,
}

type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	v := validator.New()
	mustRegister(v, "ke_phone", func(fl validator.FieldLevel) bool {
		return domain.IsValidPhone(fl.Field().String())
	})
	mustRegister(v, "gte_num", func(fl validator.FieldLevel) bool {
		value, ok := parseAmount(fl.Field().String())
		if !ok {
			return false
		}
		limit, ok := parseAmount(fl.Param())
		return ok && value >= limit
	})

	return &formValidator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

var forms = newFormValidator()

// validate returns the message of the first failing rule in field order as
// a *domain.ValidationError.
func (f *formValidator) validate(form any) error {
	err := f.v.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &domain.ValidationError{Message: msgFormFailedDefault, Err: err}
	}

	return &domain.ValidationError{Message: fieldMessage(fieldErrs[0]), Err: err}
}

// validateReset reports missing fields as a single message before any other
// rule, the way the reset form words it.
func (f *formValidator) validateReset(form ResetForm) error {
	err := f.v.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				return &domain.ValidationError{Message: msgIncompleteReset, Err: err}
			}
		}
		if len(fieldErrs) > 0 {
			return &domain.ValidationError{Message: fieldMessage(fieldErrs[0]), Err: err}
		}
	}

	return &domain.ValidationError{Message: msgFormFailedDefault, Err: err}
}

func fieldMessage(fe validator.FieldError) string {
	key := strings.Join([]string{structName(fe), fe.Field(), fe.Tag()}, ".")
	if message, ok := formMessages[key]; ok {
		return message
	}

	return fe.Field() + " failed validation (" + fe.Tag() + ")"
}

func structName(fe validator.FieldError) string {
	namespace := fe.StructNamespace()
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[:i]
	}

	return namespace
}

func parseAmount(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}

	return value, true
}
