package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/fi-dashboard/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/fi-dashboard/pkg/apiErrors"
	"github.com/vfg2006/fi-dashboard/pkg/log"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger(io.Discard)
	os.Exit(m.Run())
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			w.Header().Set("X-User", claims.Username)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestOperatorOnly(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(auth *mocks.MockAuthenticator)
		wantStatus int
		wantCode   string
		wantUser   string
	}{
		{
			name:       "auth disabled passes through",
			setup:      func(auth *mocks.MockAuthenticator) { auth.EXPECT().Enabled().Return(false) },
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "missing header",
			setup:      func(auth *mocks.MockAuthenticator) { auth.EXPECT().Enabled().Return(true) },
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "not a bearer token",
			header:     "Basic b3BzOnNlY3JldA==",
			setup:      func(auth *mocks.MockAuthenticator) { auth.EXPECT().Enabled().Return(true) },
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:   "expired token",
			header: "Bearer old",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
				auth.EXPECT().ValidateToken("old").Return(nil, fmt.Errorf("%w: token is expired", authenticating.ErrExpiredToken))
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:   "wrong role",
			header: "Bearer viewer",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
				auth.EXPECT().ValidateToken("viewer").Return(&domain.Claims{Username: "guest", Role: "viewer"}, nil)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:   "operator",
			header: "Bearer good",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
				auth.EXPECT().ValidateToken("good").Return(&domain.Claims{Username: "ops", Role: domain.RoleOperator}, nil)
			},
			wantStatus: http.StatusNoContent,
			wantUser:   "ops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			var called bool
			handler := OperatorOnly(auth)(okHandler(&called))

			req := httptest.NewRequest(http.MethodPost, "/v1/cron/dataset-reload/run", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode == "", called)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))

			if tt.wantCode != "" {
				var body apiErrors.APIError
				require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Code)
			}
		})
	}
}
