package apperr

import "github.com/supervape/catalog/pkg/zerror"

const (
	ValidationErrorCode      = "VALIDATION_FAILED"
	ProductNotFoundErrorCode = "PRODUCT_NOT_FOUND"
	FlavorNotFoundErrorCode  = "FLAVOR_NOT_FOUND"
	UnauthorizedErrorCode    = "UNAUTHORIZED"
)

var (
	ValidationErr      = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	ProductNotFoundErr = zerror.NewNotFound(ProductNotFoundErrorCode, "Product not found")
	FlavorNotFoundErr  = zerror.NewNotFound(FlavorNotFoundErrorCode, "Flavor not found")
	UnauthorizedErr    = zerror.NewUnauthorized(UnauthorizedErrorCode, "Invalid or missing API key")
)
