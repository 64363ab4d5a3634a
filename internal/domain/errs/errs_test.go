package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrity_IsAlsoValidation(t *testing.T) {
	err := Integrity("microchip %d does not belong to pet %d", 3, 1)

	assert.ErrorIs(t, err, ErrIntegrity)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, CodeIntegrity, CodeOf(err))
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestValidationCause_KeepsCause(t *testing.T) {
	dup := errors.New("duplicate tag")
	err := ValidationCause(dup, "tag %q already in use", "TAG-1")

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, dup)
	assert.Equal(t, `tag "TAG-1" already in use: duplicate tag`, err.Error())
}

func TestStorage_WrapsDriverError(t *testing.T) {
	driverErr := errors.New("connection refused")
	err := Storage("insert pet", driverErr)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, driverErr)
	assert.Equal(t, "insert pet: connection refused", err.Error())
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestStorage_DoesNotRelabelDomainErrors(t *testing.T) {
	nf := NotFound("pet %d not found", 9)
	err := Storage("update pet", fmt.Errorf("wrapped: %w", nf))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrStorage)
	assert.Nil(t, Storage("noop", nil))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("missing")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestDetailsOf(t *testing.T) {
	err := fmt.Errorf("create: %w", ValidationWithDetails("validation failed", map[string]string{"name": "is required"}))

	d := DetailsOf(err)
	require.NotNil(t, d)
	assert.Equal(t, "is required", d["name"])
	assert.Nil(t, DetailsOf(errors.New("plain")))
}
