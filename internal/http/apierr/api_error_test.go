package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supervape/catalog/internal/apperr"
	"github.com/supervape/catalog/internal/http/apierr"
	"github.com/supervape/catalog/pkg/zerror"
)

func TestNew(t *testing.T) {
	t.Run("Should map not found error to 404", func(t *testing.T) {
		res := apierr.New(apperr.ProductNotFoundErr)

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, apperr.ProductNotFoundErrorCode, res.Code)
		assert.Equal(t, "Product not found", res.Message)
	})

	t.Run("Should map wrapped domain error to its status", func(t *testing.T) {
		err := fmt.Errorf("flavor repository get by id: %w", apperr.FlavorNotFoundErr)

		res := apierr.New(err)

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, apperr.FlavorNotFoundErrorCode, res.Code)
	})

	t.Run("Should map validation error to 400", func(t *testing.T) {
		err := apperr.ValidationErr.WrapParent(errors.New("unexpected EOF"))

		res := apierr.New(err)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, apperr.ValidationErrorCode, res.Code)
	})

	t.Run("Should map unauthorized error to 401", func(t *testing.T) {
		res := apierr.New(apperr.UnauthorizedErr)

		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("Should map field validation errors with details", func(t *testing.T) {
		type payload struct {
			Name string `validate:"required"`
		}
		err := govalidator.New().Struct(payload{})
		require.Error(t, err)

		res := apierr.New(err)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "validationError", res.Code)
		require.NotNil(t, res.Details)
		require.Len(t, *res.Details, 1)
		assert.Equal(t, "Name", (*res.Details)[0].Field)
	})

	t.Run("Should map unknown errors to 500 without leaking them", func(t *testing.T) {
		res := apierr.New(errors.New("connection refused"))

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, "internalServerError", res.Code)
		assert.NotContains(t, res.Message, "connection refused")
	})
}

func TestZErrorStatusToHTTPStatus(t *testing.T) {
	cases := map[zerror.Status]int{
		zerror.StatusBadRequest:          http.StatusBadRequest,
		zerror.StatusUnauthorized:        http.StatusUnauthorized,
		zerror.StatusNotFound:            http.StatusNotFound,
		zerror.StatusConflict:            http.StatusConflict,
		zerror.StatusValidationFailed:    http.StatusBadRequest,
		zerror.StatusInternalServerError: http.StatusInternalServerError,
		zerror.StatusUnknown:             http.StatusInternalServerError,
	}

	for status, want := range cases {
		assert.Equal(t, want, apierr.ZErrorStatusToHTTPStatus(status))
	}
}
