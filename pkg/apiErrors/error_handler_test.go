package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantStatus int
	}{
		{name: "unknown page", code: ErrUnknownPage, wantStatus: http.StatusNotFound},
		{name: "bad scenario", code: ErrInvalidRequest, wantStatus: http.StatusBadRequest},
		{name: "dataset missing", code: ErrDatasetUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "unmapped code", code: "XYZ_999", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, "message", map[string]string{"k": "v"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "message", body.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	apiErr := FromError(errors.New("boom"), ErrDatabaseOperation)
	assert.Equal(t, ErrDatabaseOperation, apiErr.Code)
	assert.Equal(t, "boom", apiErr.Message)

	assert.Equal(t, ErrInternalServer, FromError(nil, ErrDatabaseOperation).Code)
}
