package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pathway/internal/analysis"
	"github.com/jonathan/career-pathway/internal/db"
	"github.com/jonathan/career-pathway/internal/llm"
	"github.com/jonathan/career-pathway/internal/observability"
	"github.com/jonathan/career-pathway/internal/server/ratelimit"
	"github.com/jonathan/career-pathway/internal/types"
)

const sampleReport = `{
  "profileOverview": {"targetRole": "Data Analyst"},
  "executiveSummary": {"fitScore": {"score": 7}},
  "skillsAssessment": {
    "gaps": [{"skill": "Data management", "importance": "critical", "description": "No modelling", "framework": "SFIA 9"}]
  }
}`

type testServer struct {
	*Server
	metrics *observability.Metrics
	store   *db.MemoryStore
}

func newTestServer(t *testing.T, opts analysis.Options, cfg Config) *testServer {
	t.Helper()
	store := db.NewMemoryStore()
	metrics := observability.NewMetrics()
	opts.Repository = store
	opts.Metrics = metrics
	svc, err := analysis.NewService(opts)
	require.NoError(t, err)

	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s := New(cfg, svc, metrics, nil)
	t.Cleanup(s.rateLimiter.Stop)
	return &testServer{Server: s, metrics: metrics, store: store}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	rec := ts.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	rec := ts.do(t, http.MethodOptions, "/analyses", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestHandleNormalizeReport(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	rec := ts.do(t, http.MethodPost, "/reports/normalize", `{"executiveSummary": {"fitScore": {"score": 8}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[NormalizeResponse](t, rec)
	assert.Equal(t, 8.0, resp.Report.ExecutiveSummary.FitScore.Score)
	assert.Equal(t, 10.0, resp.Report.ExecutiveSummary.FitScore.OutOf)
	assert.False(t, resp.Defects.Malformed())
	assert.NotContains(t, rec.Body.String(), "null")
}

func TestHandleNormalizeReport_GarbageIsDefaulted(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	rec := ts.do(t, http.MethodPost, "/reports/normalize", `<html>upstream error</html>`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[NormalizeResponse](t, rec)
	assert.True(t, resp.Defects.Malformed())
	assert.Equal(t, "No score available", resp.Report.ExecutiveSummary.FitScore.Description)
}

func TestHandleNormalizeReport_BodyTooLarge(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{MaxBodyBytes: 16})

	rec := ts.do(t, http.MethodPost, "/reports/normalize", `{"executiveSummary": {"overview": "far too long for the limit"}}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleNormalizeBatch(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	rec := ts.do(t, http.MethodPost, "/reports/normalize/batch", `{"documents": [{"profileOverview": {"targetRole": "a"}}, "oops", null]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[[]analysis.NormalizedDocument](t, rec)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Report.ProfileOverview.TargetRole)
	assert.True(t, out[1].Defects.Malformed())
	assert.True(t, out[2].Defects.Malformed())

	rec = ts.do(t, http.MethodPost, "/reports/normalize/batch", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReconcile(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	body := `{
	  "framework_skills": [{"name": "Testing", "framework": "SFIA 9", "level": "Level 3"}],
	  "gaps": [{"skill": "testing", "importance": "urgent", "description": "no automation"}],
	  "strengths": [{"skill": "Excel", "relevance": "high", "description": "pivot tables"}]
	}`
	rec := ts.do(t, http.MethodPost, "/skills/reconcile", body)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ReconcileResponse](t, rec)
	require.Len(t, resp.Skills, 2)
	assert.Equal(t, []string{"SFIA 9", "General"}, resp.Frameworks)
	assert.Equal(t, 2, *resp.Skills[0].ImportanceValue)
	assert.True(t, resp.Skills[1].UserHas)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "urgent", resp.Warnings[0].Detail)
}

func TestHandleReconcile_ValidationError(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	rec := ts.do(t, http.MethodPost, "/skills/reconcile", `{"gaps": [{"skill": "", "importance": "high"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gaps[0].Skill")

	rec = ts.do(t, http.MethodPost, "/skills/reconcile", `{"gaps": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestHandleRank(t *testing.T) {
	ts := newTestServer(t, analysis.Options{TopN: 1}, Config{})

	body := `{
	  "framework": "SFIA 9",
	  "inputs": {
	    "framework_skills": [
	      {"name": "Programming", "framework": "SFIA 9"},
	      {"name": "Testing", "framework": "SFIA 9"}
	    ],
	    "gaps": [{"skill": "Testing", "importance": "critical", "description": "x", "framework": "SFIA 9"}]
	  }
	}`
	rec := ts.do(t, http.MethodPost, "/skills/rank", body)
	require.Equal(t, http.StatusOK, rec.Code)

	ranked := decode[types.RankedSkills](t, rec)
	assert.Equal(t, "SFIA 9", ranked.Framework)
	require.Len(t, ranked.Skills, 1)
	assert.Equal(t, "Testing", ranked.Skills[0].Name)

	rec = ts.do(t, http.MethodPost, "/skills/rank", `{"inputs": {}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCharts(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	inputs := `{
	  "framework_skills": [{"name": "Programming", "framework": "SFIA 9", "level": "Level 4"}],
	  "strengths": [{"skill": "Programming", "level": "Level 5", "relevance": "high", "description": "x", "framework": "SFIA 9"}]
	}`

	rec := ts.do(t, http.MethodPost, "/charts", `{"inputs": `+inputs+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ChartsResponse](t, rec)
	require.Len(t, resp.Charts, 1)
	assert.Equal(t, 7, resp.Charts[0].Scale)
	assert.Equal(t, 1, resp.Charts[0].Pie.Validated)
	assert.Empty(t, resp.Unscaled)

	rec = ts.do(t, http.MethodPost, "/charts", `{"framework": "DigComp 2.2", "inputs": `+inputs+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[ChartsResponse](t, rec)
	require.Len(t, resp.Charts, 1)
	assert.True(t, resp.Charts[0].Empty)

	rec = ts.do(t, http.MethodPost, "/charts", `{"framework": "ESCO", "inputs": `+inputs+`}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleCharts_MixedFrameworksSkipUnscaled(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	inputs := `{
	  "framework_skills": [{"name": "Programming", "framework": "SFIA 9", "level": "Level 4"}],
	  "gaps": [{"skill": "Data literacy", "importance": "high", "description": "none", "framework": "ESCO"}]
	}`

	rec := ts.do(t, http.MethodPost, "/charts", `{"inputs": `+inputs+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[ChartsResponse](t, rec)
	require.Len(t, resp.Charts, 1)
	assert.Equal(t, "SFIA 9", resp.Charts[0].Framework)
	assert.Equal(t, []string{"ESCO"}, resp.Unscaled)

	rec = ts.do(t, http.MethodPost, "/analyses", `{"report": {}, "dry_run": true, "framework_skills": [{"name": "Programming", "framework": "SFIA 9", "level": "Level 4"}], "gaps": [{"skill": "Data literacy", "importance": "high", "description": "none", "framework": "ESCO"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[analysis.Result](t, rec)
	assert.Equal(t, resp.Unscaled, result.Unscaled)
}

func TestAnalysesLifecycle(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	body, err := json.Marshal(map[string]any{"report": json.RawMessage(sampleReport)})
	require.NoError(t, err)
	rec := ts.do(t, http.MethodPost, "/analyses", string(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[analysis.Result](t, rec)
	assert.Equal(t, "Data Analyst", created.TargetRole)
	assert.True(t, created.CatalogMatched)
	require.NotEqual(t, uuid.Nil, created.ID)

	rec = ts.do(t, http.MethodGet, "/analyses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Analyses []db.AnalysisSummary `json:"analyses"`
		Count    int                  `json:"count"`
	}](t, rec)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 7.0, list.Analyses[0].FitScore)

	rec = ts.do(t, http.MethodGet, "/analyses/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[db.Analysis](t, rec)
	assert.Equal(t, created.ID, stored.ID)
	assert.Len(t, stored.Inputs.Gaps, 1)

	rec = ts.do(t, http.MethodGet, "/analyses/"+created.ID.String()+"/charts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	chartsResp := decode[AnalysisChartsResponse](t, rec)
	assert.Equal(t, created.Charts, chartsResp.Charts)
	assert.Equal(t, created.Rankings, chartsResp.Rankings)

	rec = ts.do(t, http.MethodDelete, "/analyses/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/analyses/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAnalysis_DryRun(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	rec := ts.do(t, http.MethodPost, "/analyses", `{"target_role": "Product Manager", "dry_run": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[analysis.Result](t, rec).Stored)
}

func TestAnalyses_BadRequests(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/analyses/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/analyses?limit=0", "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/analyses/"+uuid.NewString()+"/charts", "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/analyses/"+uuid.NewString(), "").Code)
}

func TestHandleGenerateReport(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})
	rec := ts.do(t, http.MethodPost, "/reports/generate", `{"target_role": "Data Analyst", "profile": "x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	ts = newTestServer(t, analysis.Options{LLM: llm.NewStaticClient(sampleReport)}, Config{})
	rec = ts.do(t, http.MethodPost, "/reports/generate", `{"target_role": "Data Analyst"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/reports/generate", `{"target_role": "Data Analyst", "profile": "Retail analyst"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, decode[analysis.Result](t, rec).Skills, 5)
}

func TestHandleCatalogRoles(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	rec := ts.do(t, http.MethodGet, "/catalog/roles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[CatalogResponse](t, rec)
	assert.Contains(t, resp.Roles, "Data Analyst")
	assert.Equal(t, 7, resp.Scales["SFIA 9"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{})

	ts.do(t, http.MethodPost, "/reports/normalize", `{}`)
	ts.do(t, http.MethodGet, "/nowhere", "")

	rec := ts.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, "pathway_report_normalized_total 1")
	assert.Contains(t, out, `route="POST /reports/normalize"`)
	assert.Contains(t, out, `route="unmatched"`)
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
	}})

	for i := 0; i < 2; i++ {
		rec := ts.do(t, http.MethodGet, "/catalog/roles", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := ts.do(t, http.MethodGet, "/catalog/roles", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, rec)["error"])

	// probes are never limited
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/health", "").Code)
}

func TestServerShutdown(t *testing.T) {
	ts := newTestServer(t, analysis.Options{}, Config{Addr: "127.0.0.1:0"})
	assert.NoError(t, ts.Shutdown(t.Context()))
}

