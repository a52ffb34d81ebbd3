package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/26nm/careerpath/internal/delivery/http/middleware"
	"github.com/26nm/careerpath/internal/delivery/http/validation"
	"github.com/26nm/careerpath/internal/domain/analysis"
	"github.com/26nm/careerpath/internal/domain/application"
	"github.com/26nm/careerpath/internal/domain/interview"
	"github.com/26nm/careerpath/internal/domain/resume"
	"github.com/26nm/careerpath/internal/pkg/jwt"
	"github.com/26nm/careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app    *fiber.App
	jwt    *jwt.HMACService
	userID uuid.UUID
}

// newTestServer mounts public routes before the auth group, the same order
// the v1 router uses; Fiber applies group middleware in registration order.
func newTestServer(t *testing.T, public, protected func(fiber.Router)) *testServer {
	t.Helper()
	svc := jwt.NewHMACService("access", "refresh", time.Minute, time.Hour)
	app := fiber.New(fiber.Config{StructValidator: validation.New()})
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	api := app.Group("/api/v1")
	if public != nil {
		public(api)
	}
	if protected != nil {
		protected(api.Group("", middleware.NewAuthMiddleware(svc).Middleware()))
	}

	return &testServer{app: app, jwt: svc, userID: uuid.New()}
}

func (s *testServer) do(t *testing.T, method, path string, body any, auth bool) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		tok, err := s.jwt.GenerateAccessToken(s.userID, "dev@example.com")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	res, err := s.app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return res.StatusCode, env
}

func TestMatch_PublicEndpoint(t *testing.T) {
	uc := usecase.NewAnalysisUsecase(usecase.AnalysisDeps{})
	srv := newTestServer(t, NewAnalysisHandler(uc).RegisterPublicRoutes, nil)

	body := map[string]any{
		"qualifications":  []string{"Experienced in React.js and Node JS development", "strong in SQL"},
		"job_description": "Looking for React, Node.js, SQL skills",
	}

	status, env := srv.do(t, http.MethodPost, "/api/v1/analyze", body, false)
	require.Equal(t, http.StatusOK, status)
	var report struct {
		Matched     []string        `json:"matched"`
		Missing     []string        `json:"missing"`
		MatchRate   string          `json:"matchRate"`
		Diagnostics json.RawMessage `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, []string{"nodejs", "react", "sql"}, report.Matched)
	assert.Equal(t, []string{"for", "looking", "skills"}, report.Missing)
	assert.Equal(t, "50%", report.MatchRate)
	assert.Empty(t, report.Diagnostics)

	status, env = srv.do(t, http.MethodPost, "/api/v1/analyze?diagnostics=true", body, false)
	require.Equal(t, http.StatusOK, status)
	var withDiag struct {
		Diagnostics struct {
			Scores map[string]int `json:"scores"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &withDiag))
	assert.Equal(t, 2, withDiag.Diagnostics.Scores["sql"])

	status, env = srv.do(t, http.MethodPost, "/api/v1/analyze", map[string]any{}, false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"matchRate":"0%"`)

	status, _ = srv.do(t, http.MethodPost, "/api/v1/analyze?diagnostics=maybe", body, false)
	assert.Equal(t, http.StatusBadRequest, status)
}

type stubAnalyses struct {
	usecase.AnalysisUsecase
	in     usecase.AnalyzeInput
	result usecase.AnalyzeResult
	err    error
}

func (s *stubAnalyses) Analyze(_ context.Context, _ uuid.UUID, in usecase.AnalyzeInput) (usecase.AnalyzeResult, error) {
	s.in = in
	return s.result, s.err
}

func (s *stubAnalyses) Get(context.Context, uuid.UUID, uuid.UUID) (analysis.Analysis, error) {
	return analysis.Analysis{}, usecase.ErrAnalysisNotFound
}

func TestAnalyses_Analyze(t *testing.T) {
	stub := &stubAnalyses{}
	srv := newTestServer(t, nil, NewAnalysisHandler(stub).RegisterRoutes)
	resumeID := uuid.New()

	status, _ := srv.do(t, http.MethodPost, "/api/v1/analyses", map[string]any{"resume_id": resumeID}, false)
	assert.Equal(t, http.StatusUnauthorized, status)

	saved := analysis.Analysis{ID: uuid.New(), ResumeID: &resumeID, Matched: []string{"go"}, MatchRate: "100%"}
	stub.result = usecase.AnalyzeResult{Saved: &saved}
	status, env := srv.do(t, http.MethodPost, "/api/v1/analyses", map[string]any{
		"resume_id":       resumeID,
		"qualifications":  []string{" go ", "", "sql"},
		"job_description": "go",
		"save":            true,
	}, true)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "go\nsql", stub.in.ResumeText)
	require.NotNil(t, stub.in.ResumeID)
	assert.Equal(t, resumeID, *stub.in.ResumeID)
	assert.True(t, stub.in.Save)
	assert.Contains(t, string(env.Data), `"saved":{`)
	assert.Contains(t, string(env.Data), `"matchRate":"100%"`)

	stub.err = usecase.ErrNothingToAnalyze
	status, env = srv.do(t, http.MethodPost, "/api/v1/analyses", map[string]any{}, true)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Nothing to analyze", env.Message)

	stub.err = usecase.ErrInternal
	status, env = srv.do(t, http.MethodPost, "/api/v1/analyses", map[string]any{"job_description": "go"}, true)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", env.Message)

	status, _ = srv.do(t, http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), nil, true)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = srv.do(t, http.MethodGet, "/api/v1/analyses/not-a-uuid", nil, true)
	assert.Equal(t, http.StatusBadRequest, status)
}

type stubApplications struct {
	usecase.ApplicationUsecase
	created usecase.ApplicationInput
	filter  application.ListFilter
}

func (s *stubApplications) Create(_ context.Context, userID uuid.UUID, in usecase.ApplicationInput) (application.Application, error) {
	s.created = in
	return application.Application{ID: uuid.New(), UserID: userID, Company: in.Company, Position: in.Position, Status: application.StatusSaved}, nil
}

func (s *stubApplications) List(_ context.Context, _ uuid.UUID, f application.ListFilter) ([]application.Application, error) {
	s.filter = f
	if f.Limit > 100 {
		return nil, usecase.ErrInvalidInput
	}
	return []application.Application{}, nil
}

func (s *stubApplications) Get(context.Context, uuid.UUID, uuid.UUID) (application.Application, error) {
	return application.Application{}, usecase.ErrApplicationNotFound
}

type stubInterviews struct {
	usecase.InterviewUsecase
}

func (stubInterviews) ListByApplication(context.Context, uuid.UUID, uuid.UUID) ([]interview.Interview, error) {
	return nil, usecase.ErrApplicationNotFound
}

func TestApplications_Handlers(t *testing.T) {
	stub := &stubApplications{}
	srv := newTestServer(t, nil, NewApplicationHandler(stub, stubInterviews{}).RegisterRoutes)

	status, env := srv.do(t, http.MethodPost, "/api/v1/applications", map[string]any{"company": "Acme"}, true)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", env.Message)
	var fields []validation.FieldError
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Contains(t, fields, validation.FieldError{Field: "position", Rule: "required"})

	status, env = srv.do(t, http.MethodPost, "/api/v1/applications", map[string]any{
		"company": "Acme", "position": "Dev", "posting_url": "https://acme.test/jobs/1",
	}, true)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Acme", stub.created.Company)
	assert.Contains(t, string(env.Data), `"status":"saved"`)

	status, _ = srv.do(t, http.MethodGet, "/api/v1/applications?status=offer&limit=5&offset=10", nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, application.ListFilter{Status: application.StatusOffer, Limit: 5, Offset: 10}, stub.filter)

	status, _ = srv.do(t, http.MethodGet, "/api/v1/applications?limit=abc", nil, true)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = srv.do(t, http.MethodGet, "/api/v1/applications/"+uuid.NewString(), nil, true)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Application not found", env.Message)

	status, _ = srv.do(t, http.MethodGet, "/api/v1/applications/"+uuid.NewString()+"/interviews", nil, true)
	assert.Equal(t, http.StatusNotFound, status)
}

type stubResumes struct {
	usecase.ResumeUsecase
	upload usecase.ResumeUpload
	input  usecase.ResumeInput
	err    error
}

func (s *stubResumes) Upload(_ context.Context, userID uuid.UUID, in usecase.ResumeUpload) (resume.Resume, error) {
	s.upload = in
	if s.err != nil {
		return resume.Resume{}, s.err
	}
	return resume.Resume{ID: uuid.New(), UserID: userID, Title: in.Title, FileName: in.FileName}, nil
}

func (s *stubResumes) Create(_ context.Context, userID uuid.UUID, in usecase.ResumeInput) (resume.Resume, error) {
	s.input = in
	return resume.Resume{ID: uuid.New(), UserID: userID, Title: in.Title, Qualifications: in.Qualifications}, nil
}

func multipartUpload(t *testing.T, fileName, contentType string, data []byte, title string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if title != "" {
		require.NoError(t, w.WriteField("title", title))
	}
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + fileName + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestResumes_Handlers(t *testing.T) {
	stub := &stubResumes{}
	srv := newTestServer(t, nil, NewResumeHandler(stub).RegisterRoutes)
	token, err := srv.jwt.GenerateAccessToken(srv.userID, "")
	require.NoError(t, err)

	body, ct := multipartUpload(t, "cv.txt", "text/plain", []byte("Go\nSQL"), "Main")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/upload", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	status, _ := srv.send(t, req)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "cv.txt", stub.upload.FileName)
	assert.Equal(t, "text/plain", stub.upload.ContentType)
	assert.Equal(t, "Main", stub.upload.Title)
	assert.Equal(t, []byte("Go\nSQL"), stub.upload.Data)

	stub.err = usecase.ErrUnsupportedFile
	body, ct = multipartUpload(t, "cv.exe", "application/octet-stream", []byte("MZ"), "")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/resumes/upload", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	status, _ = srv.send(t, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, status)

	status, _ = srv.do(t, http.MethodPost, "/api/v1/resumes/upload", map[string]any{}, true)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = srv.do(t, http.MethodPost, "/api/v1/resumes", map[string]any{
		"title": "CV", "qualifications": []string{"Go", "  ", "Kubernetes"},
	}, true)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Go\nKubernetes", stub.input.Qualifications)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeCache struct {
	available bool
	err       error
}

func (c fakeCache) Available() bool            { return c.available }
func (c fakeCache) Ping(context.Context) error { return c.err }

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		cache  CacheStatus
		status int
		want   healthResponse
	}{
		{"all up", fakePinger{}, fakeCache{available: true}, http.StatusOK, healthResponse{Database: "up", Cache: "up"}},
		{"cache disabled", fakePinger{}, fakeCache{}, http.StatusOK, healthResponse{Database: "up", Cache: "disabled"}},
		{"cache down", fakePinger{}, fakeCache{available: true, err: errors.New("x")}, http.StatusOK, healthResponse{Database: "up", Cache: "down"}},
		{"db down", fakePinger{err: errors.New("x")}, nil, http.StatusServiceUnavailable, healthResponse{Database: "down", Cache: "disabled"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			NewHealthHandler(tt.db, tt.cache).RegisterRoutes(app)

			res, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			defer res.Body.Close()
			assert.Equal(t, tt.status, res.StatusCode)

			var env struct {
				Data healthResponse `json:"data"`
			}
			require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
			assert.Equal(t, tt.want, env.Data)
		})
	}
}
