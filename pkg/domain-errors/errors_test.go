package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeValidation, "bad code")
	assert.True(t, HasCode(err, CodeValidation))
	assert.False(t, HasCode(err, CodeDownstream))

	wrapped := fmt.Errorf("print: %w", err)
	assert.True(t, HasCode(wrapped, CodeValidation))
	assert.False(t, HasCode(errors.New("plain"), CodeValidation))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDownstream, "print service unreachable")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeDownstream, CodeOf(err))
	assert.Equal(t, "print service unreachable", MessageOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Empty(t, MessageOf(errors.New("boom")))
}

func TestErrorDoesNotRepeatCauseUsedAsMessage(t *testing.T) {
	cause := errors.New("PrintNode unreachable: context canceled")
	err := Wrap(cause, CodeDownstream, cause.Error())

	assert.Equal(t, "downstream_error: PrintNode unreachable: context canceled", err.Error())
	assert.ErrorIs(t, err, cause)
}
