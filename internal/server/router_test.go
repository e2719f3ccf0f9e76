package server

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "net/http"
  "net/http/httptest"
  "testing"
  "time"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "golang.org/x/crypto/bcrypt"

  "github.com/asthmaai/asthmaai-backend/internal/handlers"
  "github.com/asthmaai/asthmaai-backend/internal/logger"
  "github.com/asthmaai/asthmaai-backend/internal/middleware"
  "github.com/asthmaai/asthmaai-backend/internal/repos"
  "github.com/asthmaai/asthmaai-backend/internal/services"
  "github.com/asthmaai/asthmaai-backend/internal/sessions"
  "github.com/asthmaai/asthmaai-backend/internal/socket"
  "github.com/asthmaai/asthmaai-backend/internal/types"
)

func init() {
  gin.SetMode(gin.TestMode)
}

type stubGateway struct {
  reply string
  err   error
  calls int
}

func (g *stubGateway) GetMedicalChatCompletion(ctx context.Context, userMessage string) (string, error) {
  g.calls++
  if g.err != nil {
    return "", g.err
  }
  return g.reply, nil
}

type testApp struct {
  router  *gin.Engine
  store   repos.RecordStore
  gateway *stubGateway
}

func newTestApp(t *testing.T) *testApp {
  t.Helper()
  log := logger.NewNop()
  store := repos.NewMemoryRecordStore(log)
  sessionStore := sessions.NewMemoryStore(log, time.Hour, 0)
  t.Cleanup(func() { _ = sessionStore.Close() })
  hub := socket.NewHub(log)
  gw := &stubGateway{reply: "Use your rescue inhaler and rest."}

  authService := services.NewAuthService(log, store, sessionStore, services.AuthConfig{
    JWTSecretKey: "secret",
    SessionTTL:   time.Hour,
    BcryptCost:   bcrypt.MinCost,
  })
  router := NewRouter(RouterConfig{
    Log:              log,
    AuthHandler:      handlers.NewAuthHandler(authService, false),
    AuthMiddleware:   middleware.NewAuthMiddleware(log, authService),
    ChatHandler:      handlers.NewChatHandler(services.NewChatService(log, store, gw, hub)),
    SymptomHandler:   handlers.NewSymptomHandler(services.NewSymptomService(log, store, hub)),
    EducationHandler: handlers.NewEducationHandler(services.NewEducationService()),
  })
  return &testApp{router: router, store: store, gateway: gw}
}

func (a *testApp) do(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
  var buf bytes.Buffer
  if body != nil {
    if s, ok := body.(string); ok {
      buf.WriteString(s)
    } else {
      _ = json.NewEncoder(&buf).Encode(body)
    }
  }
  req := httptest.NewRequest(method, path, &buf)
  req.Header.Set("Content-Type", "application/json")
  if cookie != nil {
    req.AddCookie(cookie)
  }
  w := httptest.NewRecorder()
  a.router.ServeHTTP(w, req)
  return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
  t.Helper()
  for _, c := range w.Result().Cookies() {
    if c.Name == middleware.SessionCookieName {
      return c
    }
  }
  t.Fatalf("no %s cookie in response", middleware.SessionCookieName)
  return nil
}

func (a *testApp) register(t *testing.T, username string) (*types.User, *http.Cookie) {
  t.Helper()
  w := a.do(http.MethodPost, "/api/register", gin.H{"username": username, "password": "pw"}, nil)
  require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
  var user types.User
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
  assert.NotContains(t, w.Body.String(), "password")
  return &user, sessionCookie(t, w)
}

func TestHealthz(t *testing.T) {
  app := newTestApp(t)
  w := app.do(http.MethodGet, "/healthz", nil, nil)
  assert.Equal(t, http.StatusOK, w.Code)
  assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestChatUnauthenticatedCreatesNothing(t *testing.T) {
  app := newTestApp(t)
  user, _ := app.register(t, "alice")

  w := app.do(http.MethodPost, "/api/chat", gin.H{"content": "hi", "isBot": false}, nil)
  assert.Equal(t, http.StatusUnauthorized, w.Code)
  assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
  assert.Equal(t, 0, app.gateway.calls)

  messages, err := app.store.GetMessagesByUser(context.Background(), user.ID)
  require.NoError(t, err)
  assert.Empty(t, messages)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
  app := newTestApp(t)
  for _, route := range []struct{ method, path string }{
    {http.MethodGet, "/api/messages"},
    {http.MethodGet, "/api/symptoms"},
    {http.MethodPost, "/api/symptoms"},
    {http.MethodGet, "/api/user"},
  } {
    w := app.do(route.method, route.path, nil, nil)
    assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
  }
}

func TestChatTurn(t *testing.T) {
  app := newTestApp(t)
  user, cookie := app.register(t, "alice")

  w := app.do(http.MethodPost, "/api/chat", gin.H{"content": "I am wheezing", "isBot": false}, cookie)
  require.Equal(t, http.StatusOK, w.Code, w.Body.String())
  var bot types.Message
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bot))
  assert.True(t, bot.IsBot)
  assert.Equal(t, user.ID, bot.UserID)
  assert.Equal(t, "Use your rescue inhaler and rest.", bot.Content)

  w = app.do(http.MethodGet, "/api/messages", nil, cookie)
  require.Equal(t, http.StatusOK, w.Code)
  var messages []types.Message
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
  require.Len(t, messages, 2)
  assert.Equal(t, "I am wheezing", messages[0].Content)
  assert.False(t, messages[0].IsBot)
  assert.Equal(t, bot.ID, messages[1].ID)
}

func TestChatRejectsBadBody(t *testing.T) {
  app := newTestApp(t)
  _, cookie := app.register(t, "alice")

  for _, body := range []interface{}{`{"isBot":false}`, `{"content":42}`, `not json`} {
    w := app.do(http.MethodPost, "/api/chat", body, cookie)
    assert.Equal(t, http.StatusBadRequest, w.Code, body)
    assert.JSONEq(t, `{"message":"Invalid message format"}`, w.Body.String())
  }
  assert.Equal(t, 0, app.gateway.calls)
}

func TestChatProviderFailureIsGeneric(t *testing.T) {
  app := newTestApp(t)
  _, cookie := app.register(t, "alice")
  app.gateway.err = &services.OpenAIError{Message: "Error communicating with OpenAI: quota exceeded", Err: errors.New("429")}

  w := app.do(http.MethodPost, "/api/chat", gin.H{"content": "hello"}, cookie)
  assert.Equal(t, http.StatusInternalServerError, w.Code)
  assert.JSONEq(t, `{"message":"Failed to process chat message"}`, w.Body.String())

  w = app.do(http.MethodGet, "/api/messages", nil, cookie)
  assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSymptomsRoundTrip(t *testing.T) {
  app := newTestApp(t)
  _, cookie := app.register(t, "alice")

  w := app.do(http.MethodPost, "/api/symptoms", gin.H{"severity": 3, "description": "tight chest"}, cookie)
  require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
  var first map[string]interface{}
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
  assert.Nil(t, first["triggers"])
  assert.Nil(t, first["medication_used"])
  assert.NotEmpty(t, first["timestamp"])

  w = app.do(http.MethodPost, "/api/symptoms", gin.H{"severity": 5, "description": "night cough", "triggers": "cold air", "medication_used": "albuterol"}, cookie)
  require.Equal(t, http.StatusCreated, w.Code)

  w = app.do(http.MethodGet, "/api/symptoms", nil, cookie)
  require.Equal(t, http.StatusOK, w.Code)
  var symptoms []types.Symptom
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &symptoms))
  require.Len(t, symptoms, 2)
  assert.Equal(t, 5, symptoms[0].Severity)
  require.NotNil(t, symptoms[0].Triggers)
  assert.Equal(t, "cold air", *symptoms[0].Triggers)
  assert.Equal(t, 3, symptoms[1].Severity)
}

func TestSymptomsRejectInvalid(t *testing.T) {
  app := newTestApp(t)
  _, cookie := app.register(t, "alice")

  for _, body := range []interface{}{
    gin.H{"severity": 0, "description": "x"},
    gin.H{"severity": 6, "description": "x"},
    gin.H{"description": "x"},
    gin.H{"severity": 2},
    `{"severity":2.5,"description":"x"}`,
  } {
    w := app.do(http.MethodPost, "/api/symptoms", body, cookie)
    assert.Equal(t, http.StatusBadRequest, w.Code, body)
  }
}

func TestAuthLifecycle(t *testing.T) {
  app := newTestApp(t)
  user, cookie := app.register(t, "alice")

  w := app.do(http.MethodPost, "/api/register", gin.H{"username": "alice", "password": "again"}, nil)
  assert.Equal(t, http.StatusBadRequest, w.Code)

  w = app.do(http.MethodGet, "/api/user", nil, cookie)
  require.Equal(t, http.StatusOK, w.Code)
  assert.Contains(t, w.Body.String(), `"username":"alice"`)

  w = app.do(http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "wrong"}, nil)
  assert.Equal(t, http.StatusUnauthorized, w.Code)

  w = app.do(http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "pw"}, nil)
  require.Equal(t, http.StatusOK, w.Code)
  loginCookie := sessionCookie(t, w)

  w = app.do(http.MethodPost, "/api/logout", nil, cookie)
  assert.Equal(t, http.StatusOK, w.Code)

  w = app.do(http.MethodGet, "/api/user", nil, cookie)
  assert.Equal(t, http.StatusUnauthorized, w.Code)

  w = app.do(http.MethodGet, "/api/user", nil, loginCookie)
  require.Equal(t, http.StatusOK, w.Code)
  assert.Contains(t, w.Body.String(), `"id":1`)
  assert.Equal(t, 1, user.ID)
}

func TestEducationIsPublic(t *testing.T) {
  app := newTestApp(t)
  w := app.do(http.MethodGet, "/api/education", nil, nil)
  require.Equal(t, http.StatusOK, w.Code)
  var content types.EducationContent
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &content))
  assert.NotEmpty(t, content.Sections)
}

func corsRequest(origins []string, origin string) *httptest.ResponseRecorder {
  r := gin.New()
  r.Use(cors.New(buildCORSConfig(origins)))
  r.GET("/healthz", handlers.Health)
  req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
  req.Header.Set("Origin", origin)
  w := httptest.NewRecorder()
  r.ServeHTTP(w, req)
  return w
}

func TestCORSWildcardNeverAllowsCredentials(t *testing.T) {
  for _, origins := range [][]string{nil, {"*"}, {"https://app.example", "*"}} {
    w := corsRequest(origins, "https://evil.example")
    assert.Equal(t, http.StatusOK, w.Code)
    assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), "origins %v", origins)
    assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"), "origins %v", origins)
  }
}

func TestCORSExplicitOriginsAllowCredentials(t *testing.T) {
  origins := []string{"https://app.example"}

  w := corsRequest(origins, "https://app.example")
  assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
  assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

  w = corsRequest(origins, "https://evil.example")
  assert.Equal(t, http.StatusForbidden, w.Code)
  assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
