package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/analogalgo/letters/internal/domain"
	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/events"
	"github.com/analogalgo/letters/internal/service"
	"github.com/analogalgo/letters/internal/service/auth"
)

// mockLetterService implements service.LetterService with replaceable
// functions.
type mockLetterService struct {
	GenerateAndMailFn  func(ctx context.Context, req service.LetterRequest) (*domain.Letter, error)
	GenerateForOrderFn func(ctx context.Context, order *domain.Order, targetDate string) (*domain.Letter, error)
	GetLetterFn        func(ctx context.Context, id uuid.UUID) (*domain.Letter, error)
	ListLettersFn      func(ctx context.Context, limit int) ([]*domain.Letter, error)
}

func (m *mockLetterService) GenerateAndMail(ctx context.Context, req service.LetterRequest) (*domain.Letter, error) {
	return m.GenerateAndMailFn(ctx, req)
}

func (m *mockLetterService) GenerateForOrder(
	ctx context.Context,
	order *domain.Order,
	targetDate string,
) (*domain.Letter, error) {
	return m.GenerateForOrderFn(ctx, order, targetDate)
}

func (m *mockLetterService) GetLetter(ctx context.Context, id uuid.UUID) (*domain.Letter, error) {
	return m.GetLetterFn(ctx, id)
}

func (m *mockLetterService) ListLetters(ctx context.Context, limit int) ([]*domain.Letter, error) {
	return m.ListLettersFn(ctx, limit)
}

// authenticatorFunc adapts a function to Authenticator.
type authenticatorFunc func(ctx context.Context, password string) (*auth.Token, error)

func (f authenticatorFunc) Login(ctx context.Context, password string) (*auth.Token, error) {
	return f(ctx, password)
}

// recordingEmitter captures emitted events.
type recordingEmitter struct {
	err    error
	events []*events.TaskRequestEvent
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.TaskRequestEvent) error {
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, event)
	return nil
}

type calculatorFunc func(ctx context.Context, req cardology.Request) cardology.LetterResult

func (f calculatorFunc) Calculate(ctx context.Context, req cardology.Request) cardology.LetterResult {
	return f(ctx, req)
}

func newEngineService(t *testing.T) service.EngineService {
	t.Helper()
	svc, err := service.NewEngineService(calculatorFunc(
		func(_ context.Context, req cardology.Request) cardology.LetterResult {
			return cardology.CalculateLetterData(req.Name, req.BirthYear, req.BirthMonth, req.BirthDay, req.TargetDate)
		}), nil)
	require.NoError(t, err)
	return svc
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// withURLParam adds a chi route parameter to r.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
