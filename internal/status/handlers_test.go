package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tasks-generator-backend/internal/ai"
)

type fakeGenerator struct {
	text   string
	err    error
	prompt string
	calls  int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.text, f.err
}

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(ctx context.Context) error {
	return f.err
}

func getStatus(t *testing.T, h *Handler) Report {
	t.Helper()
	rec := httptest.NewRecorder()
	h.StatusHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", rec.Code)
	}
	var rep Report
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rep
}

func TestStatus_Healthy(t *testing.T) {
	gen := &fakeGenerator{text: "OK"}
	rep := getStatus(t, New(gen, nil, time.Second))

	want := Report{Backend: "healthy", Database: "not_configured", LLM: "healthy"}
	if rep != want {
		t.Errorf("report = %+v, want %+v", rep, want)
	}
	if gen.prompt != "Say 'OK'" {
		t.Errorf("probe prompt = %q", gen.prompt)
	}
}

func TestStatus_NotCached(t *testing.T) {
	gen := &fakeGenerator{text: "OK"}
	h := New(gen, nil, time.Second)

	getStatus(t, h)
	getStatus(t, h)

	if gen.calls != 2 {
		t.Errorf("model calls = %d, want 2", gen.calls)
	}
}

func TestStatus_LLMFailures(t *testing.T) {
	long := strings.Repeat("x", 80)

	tests := []struct {
		name string
		gen  *fakeGenerator
		want string
	}{
		{"empty text", &fakeGenerator{text: ""}, "unhealthy"},
		{"empty response error", &fakeGenerator{err: ai.ErrEmptyResponse}, "unhealthy"},
		{"short error", &fakeGenerator{err: errors.New("quota exceeded")}, "unhealthy: quota exceeded"},
		{"long error truncated", &fakeGenerator{err: errors.New(long)}, "unhealthy: " + strings.Repeat("x", 50)},
		{"multibyte error truncated by rune", &fakeGenerator{err: errors.New(strings.Repeat("é", 60))}, "unhealthy: " + strings.Repeat("é", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := getStatus(t, New(tt.gen, nil, time.Second))
			if rep.LLM != tt.want {
				t.Errorf("llm = %q, want %q", rep.LLM, tt.want)
			}
			if rep.Backend != "healthy" {
				t.Errorf("backend = %q, want healthy", rep.Backend)
			}
		})
	}
}

func TestStatus_Database(t *testing.T) {
	gen := &fakeGenerator{text: "OK"}

	rep := getStatus(t, New(gen, fakePinger{}, time.Second))
	if rep.Database != "healthy" {
		t.Errorf("database = %q, want healthy", rep.Database)
	}

	rep = getStatus(t, New(gen, fakePinger{err: errors.New("connection refused")}, time.Second))
	if rep.Database != "unhealthy: connection refused" {
		t.Errorf("database = %q", rep.Database)
	}
}

func TestStatus_ProbeTimeout(t *testing.T) {
	h := New(slowGenerator{}, nil, 20*time.Millisecond)

	rep := h.Check(context.Background())
	if !strings.HasPrefix(rep.LLM, "unhealthy: ") {
		t.Errorf("llm = %q, want unhealthy with diagnostic", rep.LLM)
	}
}

type slowGenerator struct{}

func (slowGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestStatus_MethodNotAllowed(t *testing.T) {
	gen := &fakeGenerator{text: "OK"}
	rec := httptest.NewRecorder()
	New(gen, nil, time.Second).StatusHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status code = %d, want 405", rec.Code)
	}
	if gen.calls != 0 {
		t.Errorf("model calls = %d, want 0", gen.calls)
	}
}

func TestRootHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	RootHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "Backend is running" {
		t.Errorf("body = %v", body)
	}
}

func TestRootHandler_UnknownPath(t *testing.T) {
	rec := httptest.NewRecorder()
	RootHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"detail":"Not Found"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 50); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Errorf("truncate = %q, want abc", got)
	}
}
