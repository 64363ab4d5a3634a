package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-registry/internal/domain/errs"
)

type sample struct {
	Name  string `field:"name" validate:"required"`
	Brand string `field:"brand" validate:"required,max=5"`
	ID    int64  `field:"id" validate:"gt=0"`
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(sample{Name: "Rex", Brand: "Acme", ID: 1}))

	err := v.Struct(sample{Brand: "TooLongBrand"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)

	d := errs.DetailsOf(err)
	assert.Equal(t, "is required", d["name"])
	assert.Equal(t, "must not exceed 5 characters", d["brand"])
	assert.Equal(t, "must be greater than 0", d["id"])
}
