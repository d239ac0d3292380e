package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dozr/sleeptrack/internal/auth"
	"github.com/dozr/sleeptrack/internal/config"
	"github.com/dozr/sleeptrack/internal/entry"
	"github.com/dozr/sleeptrack/internal/user"
)

type memSessions struct {
	mu   sync.Mutex
	next int
	m    map[string]string
}

func newMemSessions() *memSessions {
	return &memSessions{m: make(map[string]string)}
}

func (s *memSessions) Create(ctx context.Context, userID string) (string, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	sid := fmt.Sprintf("sess-%d", s.next)
	s.m[sid] = userID
	return sid, nil
}

func (s *memSessions) Get(ctx context.Context, sessionID string) (string, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, ok := s.m[sessionID]
	if !ok {
		return "", auth.ErrNoSession
	}
	return uid, nil
}

func (s *memSessions) Delete(ctx context.Context, sessionID string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sessionID)
	return nil
}

type stubCompleter struct {
	mu         sync.Mutex
	lastPrompt string
	reply      string
}

func (c *stubCompleter) Complete(ctx context.Context, prompt string) string {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastPrompt = prompt
	return c.reply
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubCompleter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(gormsqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &entry.Entry{}))

	cfg := config.Config{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	}
	llm := &stubCompleter{reply: "ok"}
	return NewRouter(db, cfg, newMemSessions(), llm), llm
}

func do(t *testing.T, r *gin.Engine, method, path string, body any, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed), "body: %s", w.Body.String())
	return w, parsed
}

func signupAndSignin(t *testing.T, r *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	_, resp := do(t, r, http.MethodPost, "/auth/signup", gin.H{"username": username, "password": password}, nil)
	require.Equal(t, true, resp["success"], "signup: %v", resp)

	w, resp := do(t, r, http.MethodPost, "/auth/signin", gin.H{"username": username, "password": password}, nil)
	require.Equal(t, true, resp["success"], "signin: %v", resp)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "signin must set the session cookie")
	return cookies
}

func errorsOf(resp map[string]any) []string {
	raw, _ := resp["errors"].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, _ := v.(string)
		out = append(out, s)
	}
	return out
}

func TestSignupDuplicateUsername(t *testing.T) {
	r, _ := newTestRouter(t)

	_, resp := do(t, r, http.MethodPost, "/auth/signup", gin.H{"username": "alice", "password": "pw"}, nil)
	assert.Equal(t, true, resp["success"])

	_, resp = do(t, r, http.MethodPost, "/auth/signup", gin.H{"username": "alice", "password": "pw"}, nil)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, []string{"Username already exists"}, errorsOf(resp))
}

func TestSigninBadCredentials(t *testing.T) {
	r, _ := newTestRouter(t)

	_, resp := do(t, r, http.MethodPost, "/auth/signup", gin.H{"username": "alice", "password": "pw"}, nil)
	require.Equal(t, true, resp["success"])

	_, resp = do(t, r, http.MethodPost, "/auth/signin", gin.H{"username": "alice", "password": "nope"}, nil)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, []string{"Bad credentials"}, errorsOf(resp))

	_, resp = do(t, r, http.MethodPost, "/auth/signin", gin.H{"username": "ghost", "password": "pw"}, nil)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, []string{"Bad credentials"}, errorsOf(resp))
}

func TestStatusAndSignout(t *testing.T) {
	r, _ := newTestRouter(t)

	_, resp := do(t, r, http.MethodGet, "/auth/status", nil, nil)
	assert.Equal(t, false, resp["success"])
	_, hasErrors := resp["errors"]
	assert.False(t, hasErrors, "status carries no errors array")

	cookies := signupAndSignin(t, r, "alice", "pw")

	_, resp = do(t, r, http.MethodGet, "/auth/status", nil, cookies)
	assert.Equal(t, true, resp["success"])

	_, resp = do(t, r, http.MethodPost, "/auth/signout", nil, cookies)
	assert.Equal(t, true, resp["success"])

	// the server-side session is gone even though the cookie still validates
	_, resp = do(t, r, http.MethodGet, "/auth/status", nil, cookies)
	assert.Equal(t, false, resp["success"])

	_, resp = do(t, r, http.MethodGet, "/entry/entries", nil, cookies)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, []string{"Invalid session"}, errorsOf(resp))
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/entry/entries"},
		{http.MethodPost, "/entry/add"},
		{http.MethodPost, "/entry/delete"},
		{http.MethodPost, "/analytics/notes"},
		{http.MethodGet, "/analytics/forall"},
		{http.MethodPost, "/auth/signout"},
	} {
		w, resp := do(t, r, route.method, route.path, gin.H{}, nil)
		assert.Equal(t, http.StatusOK, w.Code, route.path)
		assert.Equal(t, false, resp["success"], route.path)
		assert.Equal(t, []string{"Invalid session"}, errorsOf(resp), route.path)
	}
}

func TestAddAndListEntries(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := signupAndSignin(t, r, "alice", "pw")

	_, resp := do(t, r, http.MethodPost, "/entry/add",
		gin.H{"start": 0, "end": 28800000, "rate": 8, "notes": "ok"}, cookies)
	require.Equal(t, true, resp["success"], "add: %v", resp)
	entryID, _ := resp["entryId"].(string)
	require.NotEmpty(t, entryID)

	_, resp = do(t, r, http.MethodGet, "/entry/entries", nil, cookies)
	require.Equal(t, true, resp["success"])
	entries, _ := resp["entries"].([]any)
	require.Len(t, entries, 1)
	got, _ := entries[0].(map[string]any)
	assert.Equal(t, entryID, got["id"])
	assert.Equal(t, float64(8), got["rate"])
	assert.Equal(t, float64(28800000), got["end"])
	assert.Equal(t, "ok", got["notes"])
}

func TestDeleteEntryOwnership(t *testing.T) {
	r, _ := newTestRouter(t)
	aliceCookies := signupAndSignin(t, r, "alice", "pw")
	bobCookies := signupAndSignin(t, r, "bob", "pw")

	_, resp := do(t, r, http.MethodPost, "/entry/add",
		gin.H{"start": 1, "end": 2, "rate": 5, "notes": "mine"}, aliceCookies)
	require.Equal(t, true, resp["success"])
	entryID := resp["entryId"].(string)

	// someone else's entry stays put
	_, resp = do(t, r, http.MethodPost, "/entry/delete", gin.H{"entryId": entryID}, bobCookies)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, []string{"Unauthorized"}, errorsOf(resp))

	_, resp = do(t, r, http.MethodGet, "/entry/entries", nil, aliceCookies)
	entries, _ := resp["entries"].([]any)
	require.Len(t, entries, 1, "entry must survive the unauthorized delete")

	// the owner may delete it
	_, resp = do(t, r, http.MethodPost, "/entry/delete", gin.H{"entryId": entryID}, aliceCookies)
	assert.Equal(t, true, resp["success"])

	_, resp = do(t, r, http.MethodPost, "/entry/delete", gin.H{"entryId": entryID}, aliceCookies)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, []string{"Entry not found"}, errorsOf(resp))
}

func TestAnalyticsNotes(t *testing.T) {
	r, llm := newTestRouter(t)
	cookies := signupAndSignin(t, r, "alice", "pw")

	_, resp := do(t, r, http.MethodPost, "/entry/add",
		gin.H{"start": 0, "end": 28800000, "rate": 8, "notes": "ok"}, cookies)
	require.Equal(t, true, resp["success"])
	entryID := resp["entryId"].(string)

	llm.reply = "<think>considering the rating</think>\nХороший сон."
	_, resp = do(t, r, http.MethodPost, "/analytics/notes", gin.H{"entryId": entryID}, cookies)
	require.Equal(t, true, resp["success"], "notes: %v", resp)
	assert.Equal(t, "Хороший сон.", resp["data"])

	_, resp = do(t, r, http.MethodPost, "/analytics/notes", gin.H{"entryId": "missing"}, cookies)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, []string{"Entry not found"}, errorsOf(resp))
}

func TestAnalyticsForAll(t *testing.T) {
	r, llm := newTestRouter(t)
	cookies := signupAndSignin(t, r, "alice", "pw")

	for i := 0; i < 2; i++ {
		_, resp := do(t, r, http.MethodPost, "/entry/add",
			gin.H{"start": i * 1000, "end": i*1000 + 500, "rate": 7, "notes": fmt.Sprintf("day %d", i)}, cookies)
		require.Equal(t, true, resp["success"])
	}

	llm.reply = "  Режим сна стабильный.  "
	_, resp := do(t, r, http.MethodGet, "/analytics/forall", nil, cookies)
	require.Equal(t, true, resp["success"])
	assert.Equal(t, "Режим сна стабильный.", resp["data"])

	llm.mu.Lock()
	prompt := llm.lastPrompt
	llm.mu.Unlock()
	assert.Contains(t, prompt, `"notes":"day 0"`)
	assert.Contains(t, prompt, `"notes":"day 1"`)
}

// The gateway reports failures as sentinel text, so a dead upstream surfaces
// to the caller as a successful response whose data is the sentinel.
func TestAnalyticsSentinelPassthrough(t *testing.T) {
	r, llm := newTestRouter(t)
	cookies := signupAndSignin(t, r, "alice", "pw")

	llm.reply = "IO exception"
	_, resp := do(t, r, http.MethodGet, "/analytics/forall", nil, cookies)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "IO exception", resp["data"])
}
