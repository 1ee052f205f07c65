package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edguillen/research-digest/app/jobs"
	"github.com/edguillen/research-digest/app/ledger"
	"github.com/edguillen/research-digest/app/queries"
	"github.com/edguillen/research-digest/app/research"
	"github.com/edguillen/research-digest/app/store"
)

type stubJob struct {
	result jobs.Result
	runs   int
}

func (s *stubJob) Execute(ctx context.Context) jobs.Result {
	s.runs++
	return s.result
}

type stubRenderer struct{}

func (s *stubRenderer) RenderMorning(ctx context.Context, findings []research.Finding, blogTopics []research.BlogTopic, urgentItems []research.UrgentItem) string {
	return "<html><body>digest preview</body></html>"
}

func (s *stubRenderer) RenderEvening(urgentItems []research.UrgentItem) string {
	return "<html></html>"
}

func testServer(cronSecret string) (*stubJob, *stubJob, http.Handler, *ledger.DailyRunLedger) {
	morning := &stubJob{result: jobs.Result{Success: true, JobType: jobs.JobTypeMorningDigest}}
	evening := &stubJob{result: jobs.Result{Success: true, JobType: jobs.JobTypeEveningCatchup}}
	daily := ledger.NewDailyRunLedger(store.NewMemoryStore())

	handler := NewHandler(morning, evening, daily, &stubRenderer{}, queries.Defaults(), "https://example.com/blog", "test")
	return morning, evening, NewServer(handler, cronSecret), daily
}

func TestCronEndpointRejectsMissingSecret(t *testing.T) {
	_, _, server, _ := testServer("secret")

	req := httptest.NewRequest("GET", "/cron/morning-digest", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestCronEndpointRejectsWrongSecret(t *testing.T) {
	_, _, server, _ := testServer("secret")

	req := httptest.NewRequest("GET", "/cron/morning-digest", nil)
	req.Header.Set("X-API-Key", "wrong")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestCronEndpointAcceptsAPIKeyHeader(t *testing.T) {
	morning, _, server, _ := testServer("secret")

	req := httptest.NewRequest("GET", "/cron/morning-digest", nil)
	req.Header.Set("X-API-Key", "secret")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if morning.runs != 1 {
		t.Errorf("Expected morning job executed once, got %d", morning.runs)
	}
}

func TestCronEndpointAcceptsBearerToken(t *testing.T) {
	_, evening, server, _ := testServer("secret")

	req := httptest.NewRequest("GET", "/cron/evening-catchup", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if evening.runs != 1 {
		t.Errorf("Expected evening job executed once, got %d", evening.runs)
	}
}

func TestCronEndpointOpenWithoutSecret(t *testing.T) {
	morning, _, server, _ := testServer("")

	req := httptest.NewRequest("GET", "/cron/morning-digest", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected open endpoint without secret, got %d", w.Code)
	}
	if morning.runs != 1 {
		t.Errorf("Expected morning job executed, got %d", morning.runs)
	}
}

func TestCronEndpointReportsJobFailure(t *testing.T) {
	morning, _, server, _ := testServer("")
	morning.result = jobs.Result{Success: false, Errors: []string{"send failed"}}

	req := httptest.NewRequest("GET", "/cron/morning-digest", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for failed job, got %d", w.Code)
	}

	var result jobs.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Success {
		t.Error("Expected failure result in response body")
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, _, server, _ := testServer("secret")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected health endpoint open without auth, got %d", w.Code)
	}
}

func TestStatusDegradedWithoutMorningRun(t *testing.T) {
	_, _, server, _ := testServer("secret")

	req := httptest.NewRequest("GET", "/status", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "degraded" {
		t.Errorf("Expected degraded status with no morning run, got '%v'", resp["status"])
	}
}

func TestStatusOperationalAfterRecentRun(t *testing.T) {
	_, _, server, daily := testServer("secret")

	if err := daily.SaveMorning(context.Background(), []research.UrgentItem{}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/status", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "operational" {
		t.Errorf("Expected operational status after recent run, got '%v'", resp["status"])
	}
	if _, ok := resp["lastMorningRun"]; !ok {
		t.Error("Expected lastMorningRun timestamp in status")
	}
}

func TestPreviewEmailRendersHTML(t *testing.T) {
	_, _, server, _ := testServer("secret")

	req := httptest.NewRequest("GET", "/preview-email", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Expected HTML content type, got '%s'", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "digest preview") {
		t.Error("Expected rendered preview body")
	}
}
