package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/afrainity/cv-portal/internal/clients/intake"
	"github.com/afrainity/cv-portal/internal/config"
	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/afrainity/cv-portal/internal/repositories"
	"github.com/afrainity/cv-portal/internal/services"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

const validSession = "valid-session"

type sessionStub struct{}

func (sessionStub) Verify(_ context.Context, token string) (string, error) {
	if token == validSession {
		return "admin@example.com", nil
	}
	return "", errors.New("session rejected")
}

type intakeRecorder struct {
	mu     sync.Mutex
	status int
	forms  []map[string][]string
	files  []string
}

func (rec *intakeRecorder) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(32 << 20)

		rec.mu.Lock()
		defer rec.mu.Unlock()

		rec.forms = append(rec.forms, r.MultipartForm.Value)
		if headers := r.MultipartForm.File["CV"]; len(headers) > 0 {
			rec.files = append(rec.files, headers[0].Filename)
		}

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
	}
}

func (rec *intakeRecorder) received() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.forms)
}

func (rec *intakeRecorder) lastForm() map[string][]string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.forms[len(rec.forms)-1]
}

type testPortal struct {
	handler http.Handler
	dbCtx   *repositories.DbContext
	intake  *intakeRecorder
}

func newTestPortal(t *testing.T) *testPortal {

	dbCtx, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "portal.db"))
	assert.NoError(t, err)
	assert.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() {
		_ = dbCtx.Close()
	})

	recorder := &intakeRecorder{}
	intakeServer := httptest.NewServer(recorder.handler())
	t.Cleanup(intakeServer.Close)

	jobs := repositories.NewJobPostsRepository(dbCtx.DB)
	records := repositories.NewCVRecordsRepository(dbCtx.DB)

	scale, err := entities.NewRatingScale(10)
	assert.NoError(t, err)

	reviewCfg := config.ReviewConfig{RatingScale: 10, TitleResolution: config.ResolveByID}

	srv := NewServer(
		jobs,
		services.NewApplicationSubmitter(EventBus.New(), jobs, intake.NewClient(intakeServer.URL), "test"),
		services.NewCVReviewer(records, jobs, reviewCfg),
		services.NewStatsAggregator(scale),
		sessionStub{},
	)

	return &testPortal{handler: srv.Router(), dbCtx: dbCtx, intake: recorder}
}

func (p *testPortal) do(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	p.handler.ServeHTTP(recorder, req)
	return recorder
}

func (p *testPortal) createJob(t *testing.T, title, status string) string {

	response := p.do(http.MethodPost, "/api/admin/jobs", validSession,
		jobBody(t, title, status), "application/json")
	assert.Equal(t, http.StatusCreated, response.Code)

	var created map[string]string
	assert.NoError(t, json.NewDecoder(response.Body).Decode(&created))
	assert.NotEmpty(t, created["id"])
	return created["id"]
}

func jobBody(t *testing.T, title, status string) *bytes.Buffer {

	payload := map[string]string{
		"title":       title,
		"location":    "Nairobi",
		"department":  "Engineering",
		"type":        "Full-time",
		"description": "Build and run backend services",
		"status":      status,
	}

	body := &bytes.Buffer{}
	assert.NoError(t, json.NewEncoder(body).Encode(payload))
	return body
}

func applicationForm(t *testing.T, fields map[string]string, withCV bool) (*bytes.Buffer, string) {

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for field, value := range fields {
		assert.NoError(t, writer.WriteField(field, value))
	}

	if withCV {
		part, err := writer.CreateFormFile("cv", "cv.pdf")
		assert.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake"))
		assert.NoError(t, err)
	}

	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func activeJobs(t *testing.T, p *testPortal) []entities.JobPost {

	response := p.do(http.MethodGet, "/api/jobs", "", nil, "")
	assert.Equal(t, http.StatusOK, response.Code)

	var jobs []entities.JobPost
	assert.NoError(t, json.NewDecoder(response.Body).Decode(&jobs))
	return jobs
}

func Test_Server_Health(t *testing.T) {

	response := newTestPortal(t).do(http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, response.Code)
}

func Test_Server_AdminRoutes_WhenSessionMissing_ShouldReturnUnauthorized(t *testing.T) {

	portal := newTestPortal(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodGet, "/api/admin/cv-analyses"},
		{http.MethodGet, "/api/admin/jobs"},
		{http.MethodPost, "/api/admin/jobs"},
		{http.MethodGet, "/api/admin/jobs/some-id"},
		{http.MethodPut, "/api/admin/jobs/some-id"},
		{http.MethodDelete, "/api/admin/jobs/some-id"},
	}

	for _, route := range routes {
		response := portal.do(route.method, route.path, "", nil, "")
		assert.Equal(t, http.StatusUnauthorized, response.Code, "%s %s", route.method, route.path)
	}
}

func Test_Server_AdminRoutes_WhenSessionInvalid_ShouldReturnUnauthorized(t *testing.T) {

	portal := newTestPortal(t)

	response := portal.do(http.MethodGet, "/api/admin/jobs", "expired-session", nil, "")
	assert.Equal(t, http.StatusUnauthorized, response.Code)
}

func Test_Server_JobLifecycle_DraftStaysHiddenUntilActivated(t *testing.T) {

	assert := assert.New(t)
	portal := newTestPortal(t)

	id := portal.createJob(t, "Backend Engineer", "Draft")
	assert.Empty(activeJobs(t, portal))

	response := portal.do(http.MethodGet, "/api/jobs/"+id, "", nil, "")
	assert.Equal(http.StatusNotFound, response.Code)

	response = portal.do(http.MethodPut, "/api/admin/jobs/"+id, validSession,
		jobBody(t, "Backend Engineer", "Active"), "application/json")
	assert.Equal(http.StatusOK, response.Code)

	jobs := activeJobs(t, portal)
	assert.Len(jobs, 1)
	assert.Equal(id, jobs[0].ID)

	response = portal.do(http.MethodGet, "/api/jobs/"+id, "", nil, "")
	assert.Equal(http.StatusOK, response.Code)

	form, contentType := applicationForm(t, map[string]string{
		"name":  "Jane Doe",
		"email": "jane.doe@example.com",
		"jobId": id,
	}, true)
	response = portal.do(http.MethodPost, "/api/applications", "", form, contentType)
	assert.Equal(http.StatusAccepted, response.Code)

	assert.Equal(1, portal.intake.received())
	sent := portal.intake.lastForm()
	assert.Equal([]string{"Jane Doe"}, sent["Name"])
	assert.Equal([]string{"jane.doe@example.com"}, sent["Email"])
	assert.Equal([]string{id}, sent["JobId"])
	assert.Equal([]string{"Backend Engineer"}, sent["JobTitle"])
	assert.Equal([]string{"test"}, sent["formMode"])
	assert.Equal([]string{"cv.pdf"}, portal.intake.files)
}

func Test_Server_SubmitApplication_WhenFieldsMissing_ShouldNotReachIntake(t *testing.T) {

	assert := assert.New(t)
	portal := newTestPortal(t)

	form, contentType := applicationForm(t, map[string]string{
		"email": "jane.doe@example.com",
		"jobId": "job-1",
	}, true)
	response := portal.do(http.MethodPost, "/api/applications", "", form, contentType)
	assert.Equal(http.StatusBadRequest, response.Code)

	form, contentType = applicationForm(t, map[string]string{
		"name":  "Jane Doe",
		"email": "jane.doe@example.com",
		"jobId": "job-1",
	}, false)
	response = portal.do(http.MethodPost, "/api/applications", "", form, contentType)
	assert.Equal(http.StatusBadRequest, response.Code)

	assert.Zero(portal.intake.received())
}

func Test_Server_SubmitApplication_WhenIntakeRejects_ShouldReturnBadGateway(t *testing.T) {

	portal := newTestPortal(t)
	portal.intake.status = http.StatusInternalServerError

	portal.createJob(t, "Backend Engineer", "Active")

	form, contentType := applicationForm(t, map[string]string{
		"name":  "Jane Doe",
		"email": "jane.doe@example.com",
		"jobId": "job-1",
	}, true)
	response := portal.do(http.MethodPost, "/api/applications", "", form, contentType)
	assert.Equal(t, http.StatusBadGateway, response.Code)
}

func Test_Server_CreateJob_WhenRequiredFieldMissing_ShouldReturnBadRequest(t *testing.T) {

	portal := newTestPortal(t)

	body := &bytes.Buffer{}
	assert.NoError(t, json.NewEncoder(body).Encode(map[string]string{"title": "No location"}))

	response := portal.do(http.MethodPost, "/api/admin/jobs", validSession, body, "application/json")
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func Test_Server_CreateJob_WhenStatusUnknown_ShouldReturnBadRequest(t *testing.T) {

	portal := newTestPortal(t)

	response := portal.do(http.MethodPost, "/api/admin/jobs", validSession,
		jobBody(t, "Backend Engineer", "Archived"), "application/json")
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func Test_Server_UpdateJob_WhenMissing_ShouldReturnNotFound(t *testing.T) {

	portal := newTestPortal(t)

	response := portal.do(http.MethodPut, "/api/admin/jobs/missing", validSession,
		jobBody(t, "Backend Engineer", "Active"), "application/json")
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func Test_Server_DeleteJob_ShouldBeIdempotent(t *testing.T) {

	assert := assert.New(t)
	portal := newTestPortal(t)

	id := portal.createJob(t, "Backend Engineer", "Active")

	response := portal.do(http.MethodDelete, "/api/admin/jobs/"+id, validSession, nil, "")
	assert.Equal(http.StatusOK, response.Code)

	response = portal.do(http.MethodGet, "/api/admin/jobs/"+id, validSession, nil, "")
	assert.Equal(http.StatusNotFound, response.Code)

	response = portal.do(http.MethodDelete, "/api/admin/jobs/"+id, validSession, nil, "")
	assert.Equal(http.StatusOK, response.Code)
}

func Test_Server_ListAllJobs_ShouldFilterBySearchTerm(t *testing.T) {

	assert := assert.New(t)
	portal := newTestPortal(t)

	portal.createJob(t, "Backend Engineer", "Active")
	portal.createJob(t, "Product Designer", "Draft")

	response := portal.do(http.MethodGet, "/api/admin/jobs?search=designer", validSession, nil, "")
	assert.Equal(http.StatusOK, response.Code)

	var jobs []entities.JobPost
	assert.NoError(json.NewDecoder(response.Body).Decode(&jobs))
	assert.Len(jobs, 1)
	assert.Equal("Product Designer", jobs[0].Title)
}

func seedCVRecord(t *testing.T, portal *testPortal, id, name, vote, jobApplied string) {

	err := portal.dbCtx.DB.Table("cv_analyses").Create(map[string]any{
		"id":          id,
		"NAME":        name,
		"EMAIL":       name + "@example.com",
		"VOTE":        vote,
		"JOB_APPLIED": jobApplied,
		"DATE":        time.Now().UTC(),
	}).Error
	assert.NoError(t, err)
}

func Test_Server_ListCVAnalyses_ShouldResolveTitlesAndBands(t *testing.T) {

	assert := assert.New(t)
	portal := newTestPortal(t)

	jobID := portal.createJob(t, "Backend Engineer", "Active")
	seedCVRecord(t, portal, "rec-1", "Jane", "9", jobID)
	seedCVRecord(t, portal, "rec-2", "John", "3", "missing-job")

	response := portal.do(http.MethodGet, "/api/admin/cv-analyses", validSession, nil, "")
	assert.Equal(http.StatusOK, response.Code)

	var analyses []cvAnalysisResponse
	assert.NoError(json.NewDecoder(response.Body).Decode(&analyses))
	assert.Len(analyses, 2)

	byID := map[string]cvAnalysisResponse{}
	for _, analysis := range analyses {
		byID[analysis.ID] = analysis
	}

	assert.Equal("Backend Engineer", byID["rec-1"].JobTitle)
	assert.Equal(entities.BandExcellent, byID["rec-1"].RatingBand)
	assert.Equal("9/10", byID["rec-1"].RatingLabel)

	assert.Equal("Unknown Position", byID["rec-2"].JobTitle)
	assert.Equal(entities.BandBelowAverage, byID["rec-2"].RatingBand)
}

func Test_Server_ListCVAnalyses_ShouldFilterBySearchTerm(t *testing.T) {

	assert := assert.New(t)
	portal := newTestPortal(t)

	seedCVRecord(t, portal, "rec-1", "Jane", "9", "")
	seedCVRecord(t, portal, "rec-2", "John", "5", "")

	response := portal.do(http.MethodGet, "/api/admin/cv-analyses?search=jane", validSession, nil, "")
	assert.Equal(http.StatusOK, response.Code)

	var analyses []cvAnalysisResponse
	assert.NoError(json.NewDecoder(response.Body).Decode(&analyses))
	assert.Len(analyses, 1)
	assert.Equal("rec-1", analyses[0].ID)
}

func Test_Server_DashboardStats_ShouldSummarizeRecordsAndJobs(t *testing.T) {

	assert := assert.New(t)
	portal := newTestPortal(t)

	jobID := portal.createJob(t, "Backend Engineer", "Active")
	portal.createJob(t, "Product Designer", "Draft")

	seedCVRecord(t, portal, "rec-1", "Jane", "9", jobID)
	seedCVRecord(t, portal, "rec-2", "John", "8", jobID)
	seedCVRecord(t, portal, "rec-3", "Amina", "4", jobID)

	response := portal.do(http.MethodGet, "/api/admin/stats", validSession, nil, "")
	assert.Equal(http.StatusOK, response.Code)

	var dashboard dashboardResponse
	assert.NoError(json.NewDecoder(response.Body).Decode(&dashboard))

	assert.Equal(3, dashboard.Stats.TotalCVs)
	assert.Equal(2, dashboard.Stats.HighRatedCVs)
	assert.Equal(2, dashboard.Stats.TotalJobs)
	assert.Equal(10, dashboard.Scale)

	assert.Len(dashboard.JobStats, 1)
	assert.Equal(jobID, dashboard.JobStats[0].JobID)
	assert.Equal(3, dashboard.JobStats[0].Applications)
	assert.Equal(7.0, dashboard.JobStats[0].AverageRating)
}
