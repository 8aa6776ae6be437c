package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppError_TypePredicates(t *testing.T) {
	notFound := NewNotFoundError("entity")
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsValidation(notFound))
	assert.Equal(t, "entity not found", notFound.Message)
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)

	integrity := NewIntegrityError("relationship 7 references missing entity 3")
	assert.True(t, IsIntegrity(integrity))
	assert.Equal(t, http.StatusInternalServerError, integrity.HTTPStatus)
}

func TestWrap_PreservesAppErrorType(t *testing.T) {
	wrapped := Wrap(NewNotFoundError("entity"), "failed to load center entity")

	assert.True(t, IsNotFound(wrapped))
	assert.Contains(t, wrapped.Error(), "failed to load center entity")
	assert.Equal(t, "entity not found", GetAppError(wrapped).Message)
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	cause := stderrors.New("connection reset")
	wrapped := Wrap(cause, "list entities")

	require.True(t, IsType(wrapped, ErrorTypeInternal))
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestErrorHandler_Handle_AppError(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entity-subgraph/42/", nil)

	handler.Handle(rec, req, Wrap(NewNotFoundError("entity"), "subgraph"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "entity not found", body["error"])
	assert.Equal(t, "NOT_FOUND", body["type"])
	assert.NotContains(t, body, "details")
}

func TestErrorHandler_Handle_GenericErrorHidesMessage(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/knowledge-graph/", nil)

	handler.Handle(rec, req, stderrors.New("pq: secret table detail"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret table detail")
}

func TestErrorHandler_Middleware_RecoversPanic(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	handler.Middleware(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "panic: boom")
}

func TestErrorHandler_Handle_UnavailableSetsRetryAfter(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/knowledge-graph/", nil)

	err := NewUnavailableError("store").WithCode("CIRCUIT_OPEN")
	handler.Handle(rec, req, Wrapf(err, "failed to read graph %d", 1))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, unavailableRetryAfter, rec.Header().Get("Retry-After"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CIRCUIT_OPEN", body["code"])
	assert.Equal(t, "UNAVAILABLE", body["type"])
}

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("list entities")

	assert.True(t, IsType(err, ErrorTypeTimeout))
	assert.Equal(t, http.StatusGatewayTimeout, err.HTTPStatus)
}
