package dto

import (
	"net/url"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations attaches the custom validations referenced by
// binding tags in this package to gin's validator engine.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("httpurl", validateHTTPURL)
	}
}

// validateHTTPURL accepts only absolute http(s) URLs with a host. The stock
// "url" tag also passes schemes like javascript:, which we never want stored.
func validateHTTPURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
