package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/anupkhare/finreport/internal/domain/models"
	"github.com/anupkhare/finreport/internal/repository/localstore"
	"github.com/anupkhare/finreport/internal/server/handlers"
	"github.com/anupkhare/finreport/internal/service/finlog"
	"github.com/anupkhare/finreport/internal/service/projects"
	"github.com/anupkhare/finreport/internal/service/reports"
	"github.com/anupkhare/finreport/pkg/clients/googleauth"
)

type staticVerifier struct {
	accept string
}

func (v *staticVerifier) Verify(ctx context.Context, idToken string) (*googleauth.TokenInfo, error) {
	if idToken != v.accept {
		return nil, fmt.Errorf("unknown token")
	}
	return &googleauth.TokenInfo{Email: "accountant@example.com"}, nil
}

func newTestRouter(t *testing.T, verifier googleauth.Verifier) *gin.Engine {
	t.Helper()
	store, err := localstore.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("localstore.New: %v", err)
	}

	projectSvc := projects.NewService(store, nil, nil)
	finlogSvc := finlog.NewService(store, nil)
	reportSvc := reports.NewService(store, nil, nil)

	return New(
		handlers.NewProjectHandler(projectSvc, nil),
		handlers.NewFinancialHandler(finlogSvc, nil),
		handlers.NewReportHandler(reportSvc, nil),
		verifier,
		nil,
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProject(t *testing.T, r *gin.Engine) models.Project {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/projects", models.ProjectFormData{
		PANNumber:          "ABCDE1234F",
		CompanyName:        "Sharma Traders",
		Address:            "14 MG Road, Pune",
		FinancialYearStart: 2025,
		FinancialYearEnd:   2027,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project: status %d, body %s", w.Code, w.Body.String())
	}
	var project models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &project); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	return project
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, nil)
	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("/healthz status = %d", w.Code)
	}
}

func TestProjectLifecycle(t *testing.T) {
	r := newTestRouter(t, nil)
	project := createProject(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/projects/"+project.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get project: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/projects/"+project.ID+"/duplicate", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("duplicate: status %d, body %s", w.Code, w.Body.String())
	}
	var dup models.Project
	if err := json.Unmarshal(w.Body.Bytes(), &dup); err != nil {
		t.Fatalf("decode duplicate: %v", err)
	}
	if dup.CompanyName != "Sharma Traders (Copy)" {
		t.Errorf("duplicate CompanyName = %q", dup.CompanyName)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/projects/"+project.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/projects/"+project.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d", w.Code)
	}
}

func TestProjectValidationSurfacesField(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/projects", models.ProjectFormData{
		CompanyName:        "No PAN Ltd",
		Address:            "Somewhere",
		FinancialYearStart: 2025,
		FinancialYearEnd:   2027,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["field"] != "panNumber" {
		t.Errorf("field = %q, want panNumber", body["field"])
	}
}

func TestDailyLogRoutes(t *testing.T) {
	r := newTestRouter(t, nil)
	project := createProject(t, r)
	base := "/api/projects/" + project.ID

	w := doJSON(t, r, http.MethodPost, base+"/logs", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("append entry: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPatch, base+"/logs/0", map[string]string{
		"field": "salesValue",
		"value": "150000",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update field: status %d, body %s", w.Code, w.Body.String())
	}
	var entry models.DailyLogEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.SalesValue != 150000 {
		t.Errorf("SalesValue = %v", entry.SalesValue)
	}

	// Out-of-range index is a 404, not a silent no-op.
	w = doJSON(t, r, http.MethodPatch, base+"/logs/5", map[string]string{
		"field": "salesValue",
		"value": "1",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("out-of-range update: status %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, base+"/logs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list logs: status %d", w.Code)
	}
	var logs []models.DailyLogEntry
	if err := json.Unmarshal(w.Body.Bytes(), &logs); err != nil {
		t.Fatalf("decode logs: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("got %d logs, want 1", len(logs))
	}
}

func TestHikeConfigRoutes(t *testing.T) {
	r := newTestRouter(t, nil)
	project := createProject(t, r)
	base := "/api/projects/" + project.ID + "/hike-config"

	w := doJSON(t, r, http.MethodGet, base, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get hike config: status %d", w.Code)
	}
	var cfg models.HikeConfig
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode hike config: %v", err)
	}
	if cfg != models.DefaultHikeConfig() {
		t.Errorf("unsaved hike config = %+v, want defaults", cfg)
	}

	custom := models.HikeConfig{AuditFees: 7, BankCharges: 3, Depreciation: 12, Salary: 15, MiscIncome: 2}
	w = doJSON(t, r, http.MethodPut, base, custom)
	if w.Code != http.StatusOK {
		t.Fatalf("set hike config: status %d, body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodGet, base, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode hike config: %v", err)
	}
	if cfg != custom {
		t.Errorf("hike config = %+v, want %+v", cfg, custom)
	}
}

func TestReportRoutes(t *testing.T) {
	r := newTestRouter(t, nil)
	project := createProject(t, r)
	base := "/api/projects/" + project.ID + "/reports"

	w := doJSON(t, r, http.MethodGet, base+"/profit-loss", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profit-loss series: status %d", w.Code)
	}
	var pls []models.PLEntry
	if err := json.Unmarshal(w.Body.Bytes(), &pls); err != nil {
		t.Fatalf("decode series: %v", err)
	}
	if len(pls) != 3 {
		t.Errorf("got %d P&L entries, want 3", len(pls))
	}

	w = doJSON(t, r, http.MethodGet, base+"/balance-sheet", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("balance-sheet series: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, base+"/mpbf?year=2025", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mpbf: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, base+"/mpbf?year=2030", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("mpbf out of range: status %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, base+"/mpbf", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("mpbf without year: status %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, base+"/profit-loss/pdf?year=2025", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profit-loss pdf: status %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("pdf route did not return a PDF document")
	}

	w = doJSON(t, r, http.MethodPost, base+"/balance-sheet/export?year=2025", map[string]any{
		"includeSignature": true,
		"footnotes":        []string{"Figures projected from daily logs."},
	})
	if w.Code != http.StatusAccepted {
		t.Errorf("export: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestAuthGuard(t *testing.T) {
	verifier := &staticVerifier{accept: "good-token"}
	r := newTestRouter(t, verifier)

	w := doJSON(t, r, http.MethodGet, "/api/projects", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("good token: status %d, want 200", rec.Code)
	}

	// The health probe stays open.
	w = doJSON(t, r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("/healthz behind guard: status %d", w.Code)
	}
}
