package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollvote/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollvote/internal/core/domain"
	"github.com/vncsmyrnk/pollvote/internal/core/services"
)

const testSecret = "test-secret"

type testApp struct {
	Server *httptest.Server
	Client *http.Client
	Store  *memory.Store
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	store := memory.NewStore()
	engine := services.NewEngine(services.Dependencies{
		Transactor: store,
		Polls:      store,
		Votes:      store,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	handler := NewHandler(
		NewPollHandler(engine.Polls),
		NewVoteHandler(engine.Votes),
		NewResultHandler(engine.Tallies),
		NewVoterIdentity(testSecret),
		[]string{"*"},
	)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testApp{Server: server, Client: server.Client(), Store: store}
}

func voterToken(t *testing.T, voterID uuid.UUID) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": voterID.String(),
		"exp": time.Now().Add(15 * time.Minute).Unix(),
		"iat": time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// do sends a JSON request as the voter owning token. An empty token sends an
// anonymous request.
func (a *testApp) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, a.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
	}

	resp, err := a.Client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (a *testApp) createPoll(t *testing.T, token string, body map[string]any) domain.Poll {
	t.Helper()

	resp := a.do(t, http.MethodPost, "/api/polls", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var poll domain.Poll
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&poll))
	return poll
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}
