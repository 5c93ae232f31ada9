package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"mood-journal/internal/config"
	"mood-journal/internal/platform/metrics"
	"mood-journal/internal/ports/oracle"
	"mood-journal/internal/router"
)

// fakeOracle se puede reconfigurar entre requests.
type fakeOracle struct {
	mu    sync.Mutex
	reply string
	err   error
}

func (o *fakeOracle) set(reply string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reply, o.err = reply, err
}

func (o *fakeOracle) Annotate(ctx context.Context, req oracle.Request) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reply, o.err
}

type fakeProvider struct {
	mu    sync.Mutex
	links []string
}

func (p *fakeProvider) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.links = append(p.links, email)
	return nil
}

func (p *fakeProvider) SignOut(ctx context.Context, token string) error { return nil }

func newServer(t *testing.T, orc *fakeOracle, provider *fakeProvider) (*httptest.Server, *router.Router) {
	t.Helper()

	opts := router.Options{
		AuthVerifier: nil, // modo dev
		Metrics:      metrics.New(),
		Journal: config.JournalConfig{
			ReadAfterWriteDelay: time.Millisecond,
			DefaultListLimit:    20,
			MaxListLimit:        100,
		},
		RateLimit: config.RateLimitConfig{SignInPerMinute: 1, SignInBurst: 2},
	}
	if orc != nil {
		opts.Annotator = orc
	}
	if provider != nil {
		opts.AuthProvider = provider
	}

	rt := router.NewRouter(opts)
	ts := httptest.NewServer(rt)
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = rt.Drain(ctx)
	})
	return ts, rt
}

type entryBody struct {
	ID         string  `json:"id"`
	Content    string  `json:"content"`
	Annotation *string `json:"annotation"`
}

type createBody struct {
	Entry            entryBody `json:"entry"`
	AnnotationStatus string    `json:"annotation_status"`
	Message          string    `json:"message"`
	Replayed         bool      `json:"replayed"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func TestHTTP_EndToEnd_JournalAnnotated(t *testing.T) {
	orc := &fakeOracle{reply: "Consider a short walk to reset."}
	ts, _ := newServer(t, orc, nil)

	userID := "user-1"

	// 1) Guardar y esperar la anotación
	st, body := doReq(t, ts.URL, "POST", "/journal?wait=true", userID, map[string]any{
		"content": "Had a rough day",
	}, nil)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create entry, got %d body=%s", st, string(body))
	}

	var created createBody
	mustJSON(t, body, &created)
	if created.AnnotationStatus != "annotated" {
		t.Fatalf("expected annotated, got %q body=%s", created.AnnotationStatus, string(body))
	}
	if created.Entry.Annotation == nil || *created.Entry.Annotation != "Consider a short walk to reset." {
		t.Fatalf("unexpected annotation body=%s", string(body))
	}
	entryID := created.Entry.ID

	// 2) Lista y detalle
	{
		st, body := doReq(t, ts.URL, "GET", "/journal", userID, nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var items []entryBody
		mustJSON(t, body, &items)
		if len(items) != 1 || items[0].ID != entryID {
			t.Fatalf("unexpected list body=%s", string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/journal/"+entryID, userID, nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get entry, got %d", st)
		}
	}

	// 3) Otro usuario no la ve ni la borra
	{
		st, _ := doReq(t, ts.URL, "GET", "/journal/"+entryID, "user-2", nil, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for other user, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/journal/"+entryID, "user-2", nil, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 delete by other user, got %d", st)
		}
	}

	// 4) El dueño borra
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/journal/"+entryID, userID, nil, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/journal", userID, nil, nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty list after delete, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_Journal_OracleFailureIsDegradedSuccess(t *testing.T) {
	orc := &fakeOracle{err: errors.New("dial tcp: connection refused")}
	ts, _ := newServer(t, orc, nil)

	st, body := doReq(t, ts.URL, "POST", "/journal?wait=true", "user-1", map[string]any{
		"content": "Had a rough day",
	}, nil)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 even if oracle fails, got %d body=%s", st, string(body))
	}

	var created createBody
	mustJSON(t, body, &created)
	if created.AnnotationStatus != "failed" || created.Message == "" {
		t.Fatalf("expected failed status with message, body=%s", string(body))
	}
	if created.Entry.Annotation != nil {
		t.Fatalf("annotation must stay absent, body=%s", string(body))
	}

	// 5) Endpoint del oráculo sobre la misma entrada
	{
		st, body := doReq(t, ts.URL, "POST", "/annotate", "user-1", map[string]any{
			"entry_id": created.Entry.ID,
			"text":     "Had a rough day",
		}, nil)
		if st != http.StatusBadGateway {
			t.Fatalf("expected 502 oracle failure, got %d body=%s", st, string(body))
		}
	}

	orc.set("Consider a short walk to reset.", nil)
	{
		st, body := doReq(t, ts.URL, "POST", "/annotate", "user-1", map[string]any{
			"entry_id": created.Entry.ID,
			"text":     "Had a rough day",
		}, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 annotate, got %d body=%s", st, string(body))
		}
		var resp struct {
			GeneratedText string `json:"generated_text"`
		}
		mustJSON(t, body, &resp)
		if resp.GeneratedText != "Consider a short walk to reset." {
			t.Fatalf("unexpected generated_text body=%s", string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/annotate", "user-1", map[string]any{
			"entry_id": created.Entry.ID,
			"text":     "again",
		}, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 second annotate, got %d", st)
		}
	}
}

func TestHTTP_Journal_InputErrors(t *testing.T) {
	ts, _ := newServer(t, &fakeOracle{reply: "ok"}, nil)

	cases := []struct {
		name   string
		method string
		path   string
		user   string
		raw    string
		status int
		kind   string
	}{
		{"unauthorized", "POST", "/journal", "", `{"content":"x"}`, http.StatusUnauthorized, "unauthorized"},
		{"malformed json", "POST", "/journal", "user-1", `{"content":`, http.StatusBadRequest, "parse_error"},
		{"empty content", "POST", "/journal", "user-1", `{"content":"   "}`, http.StatusBadRequest, "validation_error"},
		{"annotate malformed", "POST", "/annotate", "user-1", `nope`, http.StatusBadRequest, "parse_error"},
		{"annotate missing fields", "POST", "/annotate", "user-1", `{}`, http.StatusBadRequest, "validation_error"},
		{"bad limit", "GET", "/journal?limit=abc", "user-1", "", http.StatusBadRequest, "validation_error"},
		{"bad cursor", "GET", "/journal?before=yesterday", "user-1", "", http.StatusBadRequest, "validation_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doRaw(t, ts.URL, tc.method, tc.path, tc.user, tc.raw, nil)
			if st != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, st, string(body))
			}
			var eb errorBody
			mustJSON(t, body, &eb)
			if eb.Error != tc.kind {
				t.Fatalf("expected error kind %q, got %q", tc.kind, eb.Error)
			}
		})
	}
}

func TestHTTP_Journal_IdempotencyKey(t *testing.T) {
	ts, _ := newServer(t, &fakeOracle{reply: "ok"}, nil)

	headers := map[string]string{"Idempotency-Key": "retry-1"}

	st, body := doReq(t, ts.URL, "POST", "/journal?wait=true", "user-1", map[string]any{"content": "Had a rough day"}, headers)
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var first createBody
	mustJSON(t, body, &first)

	st, body = doReq(t, ts.URL, "POST", "/journal", "user-1", map[string]any{"content": "Had a rough day"}, headers)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 replay, got %d body=%s", st, string(body))
	}
	var again createBody
	mustJSON(t, body, &again)
	if !again.Replayed || again.Entry.ID != first.Entry.ID {
		t.Fatalf("expected replay of %s, body=%s", first.Entry.ID, string(body))
	}

	_, body = doReq(t, ts.URL, "GET", "/journal", "user-1", nil, nil)
	var items []entryBody
	mustJSON(t, body, &items)
	if len(items) != 1 {
		t.Fatalf("expected a single entry, got %d", len(items))
	}
}

func TestHTTP_Moods(t *testing.T) {
	ts, _ := newServer(t, nil, nil)

	st, body := doReq(t, ts.URL, "GET", "/moods/labels", "", nil, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "anxious") {
		t.Fatalf("expected labels, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/moods", "user-1", map[string]any{"mood": "calm", "note": "tea"}, nil)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create mood, got %d body=%s", st, string(body))
	}
	var m struct {
		ID   string `json:"id"`
		Mood string `json:"mood"`
	}
	mustJSON(t, body, &m)
	if m.ID == "" || m.Mood != "calm" {
		t.Fatalf("unexpected mood body=%s", string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/moods", "user-1", map[string]any{"mood": "ecstatic"}, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown mood, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/moods?limit=5", "user-1", nil, nil)
	if st != http.StatusOK || !strings.Contains(string(body), m.ID) {
		t.Fatalf("expected mood in list, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "DELETE", "/moods/"+m.ID, "user-2", nil, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 delete by other user, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "DELETE", "/moods/"+m.ID, "user-1", nil, nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 delete mood, got %d", st)
	}
}

func TestHTTP_AuthSession(t *testing.T) {
	provider := &fakeProvider{}
	ts, _ := newServer(t, nil, provider)

	st, body := doReq(t, ts.URL, "GET", "/auth/session", "", nil, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"signed_out"`) {
		t.Fatalf("expected signed_out, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/auth/session", "user-1", nil, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"signed_in"`) || !strings.Contains(string(body), "user-1") {
		t.Fatalf("expected signed_in, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/auth/magic-link", "", map[string]any{"email": "not-an-email"}, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid email, got %d", st)
	}

	st, body = doReq(t, ts.URL, "POST", "/auth/magic-link", "", map[string]any{"email": "ana@example.com"}, nil)
	if st != http.StatusAccepted {
		t.Fatalf("expected 202 magic link, got %d body=%s", st, string(body))
	}
	if len(provider.links) != 1 {
		t.Fatalf("expected provider to be called once, got %d", len(provider.links))
	}

	// burst 2 agotado
	st, _ = doReq(t, ts.URL, "POST", "/auth/magic-link", "", map[string]any{"email": "ana@example.com"}, nil)
	if st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", st)
	}

	st, body = doReq(t, ts.URL, "POST", "/auth/sign-out", "user-1", nil, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "signed_out") {
		t.Fatalf("expected 200 sign-out, got %d body=%s", st, string(body))
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts, _ := newServer(t, &fakeOracle{reply: "ok"}, nil)

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil, nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected ok health, got %d body=%s", st, string(body))
	}

	_, _ = doReq(t, ts.URL, "POST", "/journal?wait=true", "user-1", map[string]any{"content": "hola"}, nil)

	st, body = doReq(t, ts.URL, "GET", "/metrics", "", nil, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	for _, name := range []string{"moodjournal_journal_submissions_total", "moodjournal_http_requests_total"} {
		if !strings.Contains(string(body), name) {
			t.Fatalf("metrics missing %s", name)
		}
	}
}

func mustJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any, headers map[string]string) (int, []byte) {
	t.Helper()

	raw := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		raw = string(b)
	}
	return doRaw(t, baseURL, method, path, debugUserID, raw, headers)
}

func doRaw(t *testing.T, baseURL, method, path, debugUserID, raw string, headers map[string]string) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if raw != "" {
		rdr = bytes.NewReader([]byte(raw))
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if raw != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
