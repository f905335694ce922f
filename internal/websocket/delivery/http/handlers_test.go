package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"chat-realtime/config"
	"chat-realtime/internal/middleware"
	"chat-realtime/internal/model"
	"chat-realtime/internal/websocket"
	"chat-realtime/pkg/cable"
	"chat-realtime/pkg/log"
	"chat-realtime/pkg/scope"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	mu     sync.Mutex
	scopes []model.Scope
	err    error
}

func (f *fakeUseCase) Run()                           {}
func (f *fakeUseCase) Shutdown(context.Context) error { return nil }
func (f *fakeUseCase) GetStats(context.Context) (websocket.HubStats, error) {
	return websocket.HubStats{}, nil
}
func (f *fakeUseCase) ProcessMessage(context.Context, websocket.ProcessMessageInput) error {
	return nil
}

func (f *fakeUseCase) Register(_ context.Context, in websocket.ConnectionInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.scopes = append(f.scopes, in.Scope)
	in.Conn.Close()
	return nil
}

func setup(t *testing.T, uc websocket.UseCase, origins []string) (string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := scope.New("0123456789abcdef0123456789abcdef")
	mw := middleware.New(log.NewNop(), jwtManager, config.CookieConfig{Name: "chat_auth_token"}, "key")

	r := gin.New()
	New(uc, log.NewNop(), WSConfig{AllowedOrigins: origins}).RegisterRoutes(r, mw)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	token, err := jwtManager.CreateToken(scope.Payload{RegisteredClaims: jwt.RegisteredClaims{Subject: "7"}, Name: "Ann"})
	require.NoError(t, err)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/cable", token
}

func TestHandleCable_Registers(t *testing.T) {
	uc := &fakeUseCase{}
	url, token := setup(t, uc, nil)

	d := gws.Dialer{Subprotocols: []string{cable.ProtocolJSON, cable.ProtocolUnsupported}}
	conn, resp, err := d.Dial(url+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, cable.ProtocolJSON, resp.Header.Get("Sec-WebSocket-Protocol"))

	require.Eventually(t, func() bool {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		return len(uc.scopes) == 1
	}, time.Second, 10*time.Millisecond)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	assert.Equal(t, int64(7), uc.scopes[0].UserID)
	assert.Equal(t, "Ann", uc.scopes[0].Name)
}

func TestHandleCable_Rejects(t *testing.T) {
	uc := &fakeUseCase{}
	url, token := setup(t, uc, []string{"https://chat.example.com"})

	tcs := map[string]struct {
		query     string
		protocols []string
		origin    string
		want      int
	}{
		"no token":          {protocols: []string{cable.ProtocolJSON}, want: http.StatusUnauthorized},
		"bad token":         {query: "?token=nope", protocols: []string{cable.ProtocolJSON}, want: http.StatusUnauthorized},
		"unsupported only":  {query: "?token=" + token, protocols: []string{cable.ProtocolUnsupported}, want: http.StatusBadRequest},
		"disallowed origin": {query: "?token=" + token, protocols: []string{cable.ProtocolJSON}, origin: "https://evil.com", want: http.StatusForbidden},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			header := http.Header{}
			if tc.origin != "" {
				header.Set("Origin", tc.origin)
			}
			d := gws.Dialer{Subprotocols: tc.protocols}
			_, resp, err := d.Dial(url+tc.query, header)
			require.ErrorIs(t, err, gws.ErrBadHandshake)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}

	assert.Empty(t, uc.scopes)
}

func TestHandleCable_RegisterFailureClosesSocket(t *testing.T) {
	uc := &fakeUseCase{err: websocket.ErrMaxConnectionsReached}
	url, token := setup(t, uc, nil)

	d := gws.Dialer{Subprotocols: []string{cable.ProtocolJSON}}
	conn, _, err := d.Dial(url+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	var closeErr *gws.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, gws.CloseTryAgainLater, closeErr.Code)
}
