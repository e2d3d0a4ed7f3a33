//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"bookswap/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMarkMatchesWithStdlibErrorsIs(t *testing.T) {
	cause := errs.New("party is not part of this exchange")

	err := errs.Mark(cause, errs.ErrValidation)
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause.Error(), err.Error())
}

func TestMarkSurvivesWrapping(t *testing.T) {
	err := errs.Mark(errs.New("inner"), errs.ErrInvalidState)
	wrapped := errs.Wrap(err, "outer context")

	assert.True(t, errors.Is(wrapped, errs.ErrInvalidState))
}

func TestMarkNilCauseReturnsSentinel(t *testing.T) {
	assert.Equal(t, errs.ErrValidation, errs.Mark(nil, errs.ErrValidation))
}
