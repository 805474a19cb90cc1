package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"riskly/risk-simulator/internal/logger"
	"riskly/risk-simulator/internal/model"
	"riskly/risk-simulator/internal/page"
	"riskly/risk-simulator/internal/scanners"
	"riskly/risk-simulator/internal/scanners/simulated"
	"riskly/risk-simulator/internal/security"
)

const field = "audit_trail"

type fixture struct {
	router http.Handler
}

func newFixture(t *testing.T, limits security.UploadLimits, delay time.Duration) *fixture {
	t.Helper()
	pages, err := page.New(field, limits.Accept())
	require.NoError(t, err)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	scanner := simulated.New(
		simulated.WithDelay(delay),
		simulated.WithClock(func() time.Time { return ts }),
		simulated.WithIDGenerator(func() string { return "00000000-0000-0000-0000-000000000001" }),
	)
	h := NewHandler(scanner, pages, limits, field, logger.NewTestLogger(t))
	return &fixture{router: NewRouter(h, RouterOptions{MetricsEnabled: true, MetricsPath: "/metrics"})}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile(fieldName, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file chosen"))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func uploadRequest(t *testing.T, path, filename string, content []byte) *http.Request {
	body, ct := multipartBody(t, field, filename, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ct)
	return req
}

func validateAgainstSchema(t *testing.T, body []byte) {
	t.Helper()
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(AssessmentSchema),
		gojsonschema.NewBytesLoader(body),
	)
	require.NoError(t, err)
	for _, e := range result.Errors() {
		t.Errorf("schema violation: %s", e)
	}
	assert.True(t, result.Valid())
}

func TestIndex_EmptyState(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `<div class="metric-value">Waiting for Data...</div>`)
	assert.Contains(t, body, "Chart will appear here after upload")
}

func TestUpload_ShowsSampleResults(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)
	rec := f.do(uploadRequest(t, "/", "ledger.csv", []byte("date,amount\n2024-01-01,100\n")))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<div class="metric-value">76.4</div>`)
	assert.Contains(t, body, `<div class="metric-value">2</div>`)
	assert.Contains(t, body, `<div class="metric-value">ACTION REQUIRED</div>`)
	assert.Equal(t, 5, strings.Count(body, "<tr><td>"))
	assert.Contains(t, body, `<div class="chart"><svg`)
}

func TestUpload_NoFileStaysEmpty(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), time.Hour)
	rec := f.do(uploadRequest(t, "/", "", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Waiting for Data...")
}

func TestUpload_NotMultipartStaysEmpty(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), time.Hour)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := f.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Waiting for Data...")
}

func TestUpload_RejectsFileType(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)
	rec := f.do(uploadRequest(t, "/", "report.pdf", []byte("%PDF-1.7")))

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="upload-error"`)
	assert.Contains(t, body, "Waiting for Data...")
}

func TestUpload_RejectsDeclaredSize(t *testing.T) {
	limits := security.UploadLimits{MaxBytes: 10, AllowedExtensions: []string{"csv", "xlsx"}}
	f := newFixture(t, limits, 0)
	rec := f.do(uploadRequest(t, "/", "ledger.csv", bytes.Repeat([]byte("x"), 100)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUpload_RejectsOversizedBody(t *testing.T) {
	limits := security.UploadLimits{MaxBytes: 10, AllowedExtensions: []string{"csv", "xlsx"}}
	f := newFixture(t, limits, 0)
	rec := f.do(uploadRequest(t, "/", "ledger.csv", bytes.Repeat([]byte("x"), 2<<20)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUpload_ChunkedOversizedBodyReportsLimit(t *testing.T) {
	limits := security.UploadLimits{MaxBytes: 10, AllowedExtensions: []string{"csv", "xlsx"}}
	f := newFixture(t, limits, 0)
	body, ct := multipartBody(t, field, "ledger.csv", bytes.Repeat([]byte("x"), 2<<20))
	// a plain io.Reader leaves ContentLength unknown, as with chunked encoding
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", io.MultiReader(body))
	req.Header.Set("Content-Type", ct)
	require.Equal(t, int64(-1), req.ContentLength)

	rec := f.do(req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Details string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "UPLOAD_TOO_LARGE", resp.Error.Code)
	assert.Equal(t, fmt.Sprintf("request body exceeds %d bytes", limits.MaxBytes), resp.Error.Details)
	assert.NotContains(t, resp.Error.Details, "-1")
}

func TestUpload_LargeFileNeverTouchesDisk(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	f := newFixture(t, security.DefaultUploadLimits(), 0)

	content := bytes.Repeat([]byte("a,b\n"), (33<<20)/4)
	rec := f.do(uploadRequest(t, "/api/v1/simulate", "big.csv", content))

	require.Equal(t, http.StatusOK, rec.Code)
	var a model.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	require.NotNil(t, a.Upload)
	assert.Equal(t, int64(len(content)), a.Upload.Size)

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpload_FirstFileWinsAndExtraFieldsIgnored(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "before"))
	fw, err := mw.CreateFormFile(field, "first.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("12345"))
	require.NoError(t, err)
	fw, err = mw.CreateFormFile(field, "second.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := f.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var a model.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	require.NotNil(t, a.Upload)
	assert.Equal(t, "first.csv", a.Upload.Filename)
	assert.Equal(t, int64(5), a.Upload.Size)
}

func TestUpload_MetricLabelsStayBounded(t *testing.T) {
	limits := security.DefaultUploadLimits()
	f := newFixture(t, limits, 0)
	for i := 0; i < 25; i++ {
		rec := f.do(uploadRequest(t, "/", fmt.Sprintf("x.ext%d", i), []byte("a")))
		require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	}

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	allowed := map[string]bool{otherExtension: true}
	for _, e := range limits.AllowedExtensions {
		allowed[e] = true
	}
	seen := 0
	for _, mf := range families {
		if mf.GetName() != "riskly_uploads_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "extension" {
					seen++
					assert.True(t, allowed[lp.GetValue()], "unexpected extension label %q", lp.GetValue())
				}
			}
		}
	}
	assert.NotZero(t, seen)
}

func TestUpload_CancelledRequest(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), time.Hour)
	req := uploadRequest(t, "/", "ledger.csv", []byte("a,b"))
	ctx, cancel := context.WithTimeout(req.Context(), 10*time.Millisecond)
	defer cancel()

	rec := f.do(req.WithContext(ctx))
	assert.Equal(t, 499, rec.Code)
}

func TestSimulate_JSON(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)
	rec := f.do(uploadRequest(t, "/api/v1/simulate", "q3.xlsx", []byte{0x50, 0x4b, 0x03, 0x04}))

	require.Equal(t, http.StatusOK, rec.Code)
	validateAgainstSchema(t, rec.Body.Bytes())

	var a model.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, model.ViewComplete, a.State)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", a.ID)
	assert.Equal(t, scanners.SampleRows(), a.Rows)
	assert.Equal(t, scanners.SampleMetrics(), a.Metrics)
	require.NotNil(t, a.Upload)
	assert.Equal(t, "xlsx", a.Upload.Extension)
	assert.Equal(t, int64(4), a.Upload.Size)
}

func TestSimulate_NoFile(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), time.Hour)
	rec := f.do(uploadRequest(t, "/api/v1/simulate", "", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	validateAgainstSchema(t, rec.Body.Bytes())

	var a model.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, scanners.PendingAssessment(), a)
}

func TestSimulate_ContentNeverChangesOutput(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)

	contents := [][]byte{
		[]byte("category,score\nFraud,12\n"),
		[]byte("zzzzzzzzzzzzzzzzzzzzzzzz"),
		bytes.Repeat([]byte{0}, 24),
	}
	var first []byte
	for _, c := range contents {
		rec := f.do(uploadRequest(t, "/api/v1/simulate", "ledger.csv", c))
		require.Equal(t, http.StatusOK, rec.Code)
		if first == nil {
			first = rec.Body.Bytes()
			continue
		}
		assert.JSONEq(t, string(first), rec.Body.String())
	}
}

func TestUpload_ContentNeverChangesPage(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)

	contents := [][]byte{
		[]byte("category,score\nFraud,12\n"),
		[]byte("zzzzzzzzzzzzzzzzzzzzzzzz"),
		bytes.Repeat([]byte{0}, 24),
	}
	var first string
	for i, c := range contents {
		rec := f.do(uploadRequest(t, "/", "ledger.csv", c))
		require.Equal(t, http.StatusOK, rec.Code)
		if i == 0 {
			first = rec.Body.String()
			continue
		}
		assert.Equal(t, first, rec.Body.String())
	}
}

func TestSimulate_ErrorJSON(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)
	rec := f.do(uploadRequest(t, "/api/v1/simulate", "notes.txt", []byte("hi")))

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", body.Error.Code)
}

func TestSample_JSON(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), time.Hour)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/assessment/sample", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	validateAgainstSchema(t, rec.Body.Bytes())
}

func TestSchema_IsValidJSONSchema(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/schema/assessment", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	_, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(rec.Body.Bytes()))
	assert.NoError(t, err)
}

func TestChartSVG(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/chart.svg", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	for _, r := range scanners.SampleRows() {
		assert.Contains(t, string(body), r.Category)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t, security.DefaultUploadLimits(), 0)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	rec = f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "riskly_page_renders_total")
	assert.Contains(t, rec.Body.String(), "riskly_http_requests_total")
}
