package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	notFound := NotFound("missing")
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.True(t, stderrors.Is(notFound, ErrNotFound))

	badReq := BadRequest("bad request")
	assert.Equal(t, http.StatusBadRequest, badReq.Status)
	assert.True(t, stderrors.Is(badReq, ErrInvalidInput))

	unauth := Unauthorized("unauthorized")
	assert.Equal(t, http.StatusUnauthorized, unauth.Status)

	forbidden := Forbidden("forbidden")
	assert.Equal(t, http.StatusForbidden, forbidden.Status)

	gw := GatewayUnavailable("down")
	assert.Equal(t, http.StatusBadGateway, gw.Status)
	assert.True(t, stderrors.Is(gw, ErrGateway))

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
}

func TestAppError_MessageFallback(t *testing.T) {
	err := &AppError{Status: http.StatusBadRequest, Message: "just a message"}
	assert.Equal(t, "just a message", err.Error())
}

func TestNewError_WrapsSentinel(t *testing.T) {
	err := NewError("student count must be at least 1", ErrInvalidInput)
	assert.True(t, stderrors.Is(err, ErrInvalidInput))
	assert.Equal(t, ErrInvalidInput.Error(), err.Error())

	var appErr *AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "student count must be at least 1", appErr.Message)
}
