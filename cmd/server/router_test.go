package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/analogalgo/letters/internal/config"
	"github.com/analogalgo/letters/internal/domain"
	"github.com/analogalgo/letters/internal/platform/logger"
	"github.com/analogalgo/letters/internal/service/auth"
)

const (
	testPassword      = "correct horse battery staple"
	testWebhookSecret = "storefront-webhook-secret"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug", ShutdownTimeout: time.Second},
		Redis:  config.RedisConfig{CacheTTL: time.Hour},
		Auth: config.AuthConfig{
			JWTSecret:            "a-very-long-test-secret-of-at-least-32-chars",
			TokenLifetimeMinutes: 60,
			AdminPasswordHash:    string(hash),
			WebhookSecret:        testWebhookSecret,
		},
		Task: config.TaskConfig{WorkerCount: 1, QueueSize: 10, StuckTaskAgeMinutes: 30},
		Mail: config.MailConfig{
			OutputDir:  t.TempDir(),
			MaxRetries: 0,
			DefaultAddress: domain.Address{
				Name:         "Analog Algorithm Test",
				AddressLine1: "123 Mystic Lane",
				City:         "Portland",
				State:        "OR",
				ZipCode:      "97204",
				Country:      "US",
			},
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	l, _ := logger.NewTestLogger()
	app, err := newApplication(context.Background(), testConfig(t), l)
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(func() {
		srv.Close()
		app.cleanup()
	})
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/admin/login", "", map[string]string{"password": testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

func TestPublicRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, body := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	resp, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(page), "Generate test letter")

	resp, err = srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	exposition, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(exposition), "go_goroutines")

	resp, body = doJSON(t, srv, http.MethodGet, "/api/engine/birth-card?month=2&day=17", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "8♦", body["card"])
}

func TestAdminFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, _ := doJSON(t, srv, http.MethodPost, "/admin/login", "", map[string]string{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	request := map[string]string{"first_name": "Cassidy", "birth_date": "1991-02-17", "target_month": "2026-03"}

	resp, _ = doJSON(t, srv, http.MethodPost, "/admin/generate-test", "", request)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, srv)

	resp, body := doJSON(t, srv, http.MethodPost, "/admin/generate-test", token, request)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "Letter Generated and Mailed", body["message"])
	assert.Regexp(t, `^ltr_\d{6}$`, body["carrier_id"])
	engineData, ok := body["engine_data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "8♦", engineData["birth_card"])
	assert.Equal(t, float64(36), engineData["spread_year"])

	request["birth_date"] = "1991-02-30"
	resp, body = doJSON(t, srv, http.MethodPost, "/admin/generate-test", token, request)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "invalid date")

	letterID, ok := firstLetterID(t, srv, token)
	require.True(t, ok)

	resp, body = doJSON(t, srv, http.MethodGet, "/api/letters/"+letterID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "mailed", body["status"])
	assert.Equal(t, "admin", body["source"])

	resp, _ = doJSON(t, srv, http.MethodGet, "/api/letters/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodGet, "/api/letters", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStorefrontWebhook(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	token := login(t, srv)

	payload := []byte(`{"order_id":"ord_2001"}`)

	post := func(signature string) *http.Response {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/webhook/storefront", bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if signature != "" {
			req.Header.Set(auth.SignatureHeader, signature)
		}
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp
	}

	assert.Equal(t, http.StatusUnauthorized, post("").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, post("sha256=deadbeef").StatusCode)
	require.Equal(t, http.StatusAccepted, post("sha256="+auth.Sign(testWebhookSecret, payload)).StatusCode)

	require.Eventually(t, func() bool {
		letters := listLetters(t, srv, token)
		return len(letters) == 1 && letters[0]["status"] == "mailed"
	}, 5*time.Second, 20*time.Millisecond)

	letters := listLetters(t, srv, token)
	assert.Equal(t, "ord_2001", letters[0]["order_id"])
	assert.Equal(t, "storefront", letters[0]["source"])
	assert.Equal(t, "Cassidy", letters[0]["first_name"])
}

func listLetters(t *testing.T, srv *httptest.Server, token string) []map[string]interface{} {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/letters", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var letters []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&letters))
	return letters
}

func firstLetterID(t *testing.T, srv *httptest.Server, token string) (string, bool) {
	t.Helper()
	letters := listLetters(t, srv, token)
	if len(letters) == 0 {
		return "", false
	}
	id, ok := letters[0]["id"].(string)
	return id, ok
}
