// Package forms validates user input before any request leaves the client.
// A failed validation never produces network traffic: callers get a typed
// error with per-field messages keyed by JSON field name.
package forms

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Validate checks a form struct and maps rule failures to field messages.
func Validate(form any) error {
	if err := validate.Struct(form); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "numeric":
		return "must contain only digits"
	}
	return "is invalid"
}

type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterForm struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type ProfileForm struct {
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
}

type CheckoutForm struct {
	FullName   string `json:"full_name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	Phone      string `json:"phone" validate:"required,min=8,max=15"`
	PostalCode string `json:"postal_code" validate:"required,numeric,min=5,max=5"`
	CouponCode string `json:"coupon_code" validate:"omitempty,min=3"`
}

type ProductForm struct {
	Name        string `json:"name" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Stock       int    `json:"stock" validate:"gte=0"`
	Description string `json:"description"`
	Category    int64  `json:"category" validate:"required,gt=0"`
}

type CouponForm struct {
	Code            string `json:"code" validate:"required,min=3"`
	DiscountPercent int    `json:"discount_percent" validate:"required,gte=1,lte=100"`
	MaxUsage        int    `json:"max_usage" validate:"required,gte=1"`
}

type VariantForm struct {
	ColorName string `json:"color_name" validate:"required"`
	ColorCode string `json:"color_code" validate:"omitempty,hexcolor"`
	Stock     int    `json:"stock" validate:"gte=0"`
}
