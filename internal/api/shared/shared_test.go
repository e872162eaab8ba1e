package shared

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analogalgo/letters/internal/platform/logger"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	traced := SetTraceID(ctx)
	id := GetTraceID(traced)
	require.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
	assert.Equal(t, id, logger.TraceID(traced), "trace ID is visible to the logger package")
	assert.Empty(t, GetTraceID(ctx), "original context unchanged")

	assert.NotEqual(t, id, GetTraceID(SetTraceID(ctx)))
}

func TestSubject(t *testing.T) {
	t.Parallel()

	_, ok := GetSubject(context.Background())
	assert.False(t, ok)

	_, ok = GetSubject(SetSubject(context.Background(), ""))
	assert.False(t, ok)

	subject, ok := GetSubject(SetSubject(context.Background(), "admin"))
	assert.True(t, ok)
	assert.Equal(t, "admin", subject)
}

type loginBody struct {
	Password string `json:"password" validate:"required"`
}

func TestDecodeAndValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
		anyErr  bool
	}{
		{name: "valid", body: `{"password":"hunter2","extra":1}`},
		{name: "empty body", body: ``, wantErr: ErrEmptyBody},
		{name: "malformed", body: `{"password":`, anyErr: true},
		{name: "missing field", body: `{}`, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v loginBody
			err := DecodeAndValidate(r, &v)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, "hunter2", v.Password)
			}
		})
	}
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	l, buf := logger.NewTestLogger()
	ctx := logger.WithLogger(SetTraceID(context.Background()), l)
	r := httptest.NewRequest(http.MethodGet, "/api/letters", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list letters",
		errors.New("dial postgres://letters:pw@db:5432/letters failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Failed to list letters", resp.Error)
	assert.Equal(t, GetTraceID(ctx), resp.TraceID)

	logged := buf.String()
	assert.Contains(t, logged, "[REDACTED_CONNECTION]")
	assert.NotContains(t, logged, "pw@db")
}
