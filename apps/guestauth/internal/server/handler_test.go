package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/authhandler"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/chat"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeCore はテスト用のCore
type fakeCore struct {
	decision   authhandler.Decision
	attrs      authhandler.Attributes
	postAuth   authhandler.Attributes
	dropped    int
	inbox      chat.Inbox
	lastAttrs  map[string]string
	dropCalled int
	panicOn    bool
}

func (f *fakeCore) Authorize(attrs map[string]string) (authhandler.Decision, authhandler.Attributes) {
	if f.panicOn {
		panic("boom")
	}
	f.lastAttrs = attrs
	return f.decision, f.attrs
}

func (f *fakeCore) PostAuth(attrs map[string]string) authhandler.Attributes {
	f.lastAttrs = attrs
	return f.postAuth
}

func (f *fakeCore) DropExpiredUsers() int {
	f.dropCalled++
	return f.dropped
}

func (f *fakeCore) Inbox() (chat.Inbox, bool) {
	return f.inbox, f.inbox != nil
}

type fakeInbox struct {
	texts []string
}

func (f *fakeInbox) Deliver(text string) {
	f.texts = append(f.texts, text)
}

const restBody = `{
	"User-Name": {"type": "string", "value": ["alice"]},
	"Calling-Station-Id": {"type": "string", "value": ["aa-bb-cc-dd-ee-ff"]},
	"NAS-Port": {"type": "integer", "value": [7]}
}`

func doRequest(engine *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func newTestEngine(core Core, cfg *config.Config) *gin.Engine {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return NewEngine(NewHandler(core, cfg))
}

func TestHandleAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		decision   authhandler.Decision
		attrs      authhandler.Attributes
		wantStatus int
		wantBody   string
	}{
		{"reject", authhandler.DecisionReject, nil, http.StatusUnauthorized, "{}"},
		{"no-op", authhandler.DecisionNoOp, nil, http.StatusNoContent, ""},
		{"allow", authhandler.DecisionAllow, authhandler.Attributes{authhandler.AttrCleartextPassword: "123456"},
			http.StatusOK, `{"control:Cleartext-Password":"123456"}`},
		{"allow without attributes", authhandler.DecisionAllow, nil, http.StatusOK, "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := &fakeCore{decision: tt.decision, attrs: tt.attrs}
			w := doRequest(newTestEngine(core, nil), http.MethodPost, "/authorize", restBody, nil)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
			if core.lastAttrs["User-Name"] != "alice" || core.lastAttrs["NAS-Port"] != "7" {
				t.Errorf("attrs = %v", core.lastAttrs)
			}
		})
	}
}

func TestHandleAuthorizeMalformedBody(t *testing.T) {
	core := &fakeCore{decision: authhandler.DecisionReject}
	w := doRequest(newTestEngine(core, nil), http.MethodPost, "/authorize", "not json", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if len(core.lastAttrs) != 0 {
		t.Errorf("attrs = %v, want empty", core.lastAttrs)
	}
}

func TestHandlePostAuth(t *testing.T) {
	core := &fakeCore{}
	engine := newTestEngine(core, nil)

	w := doRequest(engine, http.MethodPost, "/post-auth", restBody, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("empty post-auth status = %d, want 204", w.Code)
	}

	core.postAuth = authhandler.Attributes{authhandler.AttrSessionTimeout: "3610"}
	w = doRequest(engine, http.MethodPost, "/post-auth", restBody, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got[authhandler.AttrSessionTimeout] != "3610" {
		t.Errorf("body = %v", got)
	}
}

func TestHandleDropExpired(t *testing.T) {
	core := &fakeCore{dropped: 2}
	engine := newTestEngine(core, nil)

	w := doRequest(engine, http.MethodGet, "/drop-expired", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("response = %d %q", w.Code, w.Body.String())
	}
	if core.dropCalled != 1 {
		t.Errorf("DropExpiredUsers called %d times", core.dropCalled)
	}
}

func TestHandleHealthAndInfo(t *testing.T) {
	engine := newTestEngine(&fakeCore{}, nil)

	w := doRequest(engine, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Errorf("health = %d %q", w.Code, w.Body.String())
	}
	w = doRequest(engine, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("info status = %d", w.Code)
	}
}

func TestHandleChatWebhook(t *testing.T) {
	inbox := &fakeInbox{}
	cfg := &config.Config{ChatWebhookToken: "secret"}

	tests := []struct {
		name       string
		core       *fakeCore
		body       string
		auth       string
		wantStatus int
	}{
		{"accepted", &fakeCore{inbox: inbox}, `{"text":"LIST"}`, "Bearer secret", http.StatusAccepted},
		{"missing token", &fakeCore{inbox: inbox}, `{"text":"LIST"}`, "", http.StatusUnauthorized},
		{"wrong token", &fakeCore{inbox: inbox}, `{"text":"LIST"}`, "Bearer nope", http.StatusUnauthorized},
		{"empty text", &fakeCore{inbox: inbox}, `{"text":"  "}`, "Bearer secret", http.StatusBadRequest},
		{"not webhook chat", &fakeCore{}, `{"text":"LIST"}`, "Bearer secret", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(newTestEngine(tt.core, cfg), http.MethodPost, "/chat/webhook", tt.body,
				map[string]string{"Authorization": tt.auth})
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}

	if len(inbox.texts) != 1 || inbox.texts[0] != "LIST" {
		t.Errorf("delivered = %v, want [LIST]", inbox.texts)
	}
}

func TestHandleChatWebhookWithoutToken(t *testing.T) {
	inbox := &fakeInbox{}
	engine := newTestEngine(&fakeCore{inbox: inbox}, &config.Config{})

	for _, auth := range []string{"", "Bearer ", "Bearer anything"} {
		w := doRequest(engine, http.MethodPost, "/chat/webhook", `{"text":"OK for 24 h"}`,
			map[string]string{"Authorization": auth})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Authorization %q: status = %d, want 401", auth, w.Code)
		}
	}
	if len(inbox.texts) != 0 {
		t.Errorf("delivered = %v, want nothing", inbox.texts)
	}
}

func TestTraceIDMiddleware(t *testing.T) {
	engine := newTestEngine(&fakeCore{}, nil)

	w := doRequest(engine, http.MethodGet, "/health", "", map[string]string{traceIDHeader: "trace-1"})
	if got := w.Header().Get(traceIDHeader); got != "trace-1" {
		t.Errorf("trace id = %q, want trace-1", got)
	}

	w = doRequest(engine, http.MethodGet, "/health", "", nil)
	if got := w.Header().Get(traceIDHeader); len(got) != 36 {
		t.Errorf("generated trace id = %q, want uuid", got)
	}

	long := strings.Repeat("x", maxTraceIDLen+1)
	w = doRequest(engine, http.MethodGet, "/health", "", map[string]string{traceIDHeader: long})
	if got := w.Header().Get(traceIDHeader); got == long || len(got) != 36 {
		t.Errorf("oversized trace id = %q, want regenerated uuid", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	engine := newTestEngine(&fakeCore{panicOn: true}, nil)

	w := doRequest(engine, http.MethodPost, "/authorize", restBody, nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
