package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fi-dashboard/infrastructure/filesource"
	"github.com/vfg2006/fi-dashboard/internal/api/handler"
	"github.com/vfg2006/fi-dashboard/internal/config"
	"github.com/vfg2006/fi-dashboard/internal/scheduler"
	"github.com/vfg2006/fi-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/fi-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/fi-dashboard/internal/usecases/forecasting"
	"github.com/vfg2006/fi-dashboard/internal/usecases/loading"
	"github.com/vfg2006/fi-dashboard/pkg/apiErrors"
	"github.com/vfg2006/fi-dashboard/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const operatorPassword = "s3cret-pass!"

func TestMain(m *testing.M) {
	log.SetupTestLogger(io.Discard)
	os.Exit(m.Run())
}

type testServer struct {
	handler http.Handler
	config  *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "enriched.csv")
	require.NoError(t, os.WriteFile(path, []byte("record_type,event_date,description\nevent,2021-05-11,Telebirr launch\n"), 0o644))

	hash, err := bcrypt.GenerateFromPassword([]byte(operatorPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Server:  config.Server{Host: "127.0.0.1", Port: "0", AllowedOrigins: []string{"http://localhost:3000"}},
		Dataset: config.Dataset{Path: path, DownloadName: "ethiopia_fi_enriched.csv"},
		Auth:    config.Auth{Secret: "test-secret", Username: "ops", PasswordHash: string(hash), TokenTTL: time.Hour},
	}

	loader := loading.NewService(filesource.NewDatasetReader(path))
	_, err = loader.Reload(context.Background())
	require.NoError(t, err)

	dashboard := dashboarding.NewService(loader, forecasting.NewService(nil), cfg.Dataset.DownloadName)
	reloadService := scheduler.NewDatasetReloadService(loader, cfg)

	return &testServer{
		handler: NewHandler(cfg, dashboard, loader, authenticating.NewService(cfg.Auth), handler.CronJobServices{
			DatasetReloadService: reloadService,
		}),
		config: cfg,
	}
}

func (s *testServer) do(t *testing.T, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestNewHandler_Routes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		method      string
		target      string
		wantStatus  int
		wantContent string
	}{
		{name: "healthcheck", method: http.MethodGet, target: "/healthcheck", wantStatus: http.StatusOK, wantContent: `"status":"ok"`},
		{name: "dashboard root", method: http.MethodGet, target: "/", wantStatus: http.StatusOK, wantContent: "Select Page"},
		{name: "html page", method: http.MethodGet, target: "/pages/inclusion-projections", wantStatus: http.StatusOK, wantContent: "fig-progress"},
		{name: "page list", method: http.MethodGet, target: "/v1/pages", wantStatus: http.StatusOK, wantContent: `"slug":"trends"`},
		{name: "page json", method: http.MethodGet, target: "/v1/pages/forecasts?scenario=optimistic", wantStatus: http.StatusOK, wantContent: `"scenario":"Optimistic"`},
		{name: "download", method: http.MethodGet, target: "/v1/dataset/download", wantStatus: http.StatusOK, wantContent: "Telebirr launch"},
		{name: "unknown route", method: http.MethodGet, target: "/v2/anything", wantStatus: http.StatusNotFound, wantContent: apiErrors.ErrUnknownPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.target, "", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantContent)
		})
	}
}

func TestNewHandler_Cors(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/v1/pages", "", http.Header{"Origin": {"http://localhost:3000"}})
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewHandler_OperatorFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/v1/cron/dataset-reload/run", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/login", `{"username":"ops","password":"wrong"}`, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidCredentials)

	rec = srv.do(t, http.MethodPost, "/v1/login", `{"username":"OPS","password":"`+operatorPassword+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var login handler.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	bearer := http.Header{"Authorization": {"Bearer " + login.Token}}

	rec = srv.do(t, http.MethodPost, "/v1/cron/unknown/run", "", bearer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/v1/cron/dataset-reload/run", "", bearer)
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		rec := srv.do(t, http.MethodGet, "/v1/cron/status", "", bearer)
		if rec.Code != http.StatusOK {
			return false
		}
		var status map[string]map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
			return false
		}
		runs, _ := status[handler.CronJobTypeDatasetReload]["runs"].(float64)
		return runs >= 1
	}, 2*time.Second, 20*time.Millisecond)
}

type failingTask struct{ err error }

func (f failingTask) Run(context.Context) error { return f.err }

type blockingTask struct{ stopped chan struct{} }

func (b blockingTask) Run(ctx context.Context) error {
	<-ctx.Done()
	close(b.stopped)
	return nil
}

func TestServer_RunStopsWhenBackgroundFails(t *testing.T) {
	ts := newTestServer(t)
	boom := errors.New("watcher died")
	other := blockingTask{stopped: make(chan struct{})}

	server := Server{
		httpServer: &http.Server{Addr: "127.0.0.1:0", Handler: ts.handler},
		background: []Background{failingTask{err: boom}, other},
	}

	done := make(chan error, 1)
	go func() { done <- server.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after background failure")
	}

	select {
	case <-other.stopped:
	default:
		t.Fatal("sibling background task was not cancelled")
	}
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	ts := newTestServer(t)

	server := Server{httpServer: &http.Server{Addr: "127.0.0.1:0", Handler: ts.handler}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
