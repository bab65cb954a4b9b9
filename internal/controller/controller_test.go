package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routes interface {
	RegisterRoutes(r fiber.Router, auth ...fiber.Handler)
}

// fakeAuth trusts the X-User header in place of a verified token.
func fakeAuth(ctx *fiber.Ctx) error {
	id := ctx.Get("X-User")
	if id == "" {
		return apperror.Unauthorized("Missing token")
	}
	ctx.Locals(serverutils.LocalUserID, id)
	return ctx.Next()
}

func newTestApp(controllers ...routes) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(logger.NewNopLogger()))
	api := app.Group("/api")
	for _, c := range controllers {
		c.RegisterRoutes(api, fakeAuth)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, userId uuid.UUID, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userId != uuid.Nil {
		req.Header.Set("X-User", userId.String())
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

type fakeFeedbackService struct {
	submitted []*dto.SubmitFeedbackRequest
	err       error
}

func (f *fakeFeedbackService) Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.submitted = append(f.submitted, req)
	return &dto.FeedbackResponse{Id: uuid.New(), AssessmentId: req.AssessmentId, Rating: req.Rating}, nil
}

func (f *fakeFeedbackService) GetForAssessment(ctx context.Context, userId uuid.UUID, assessmentId uuid.UUID) (*dto.FeedbackResponse, error) {
	return nil, f.err
}

func (f *fakeFeedbackService) Stats(ctx context.Context) (*dto.FeedbackStatsResponse, error) {
	return &dto.FeedbackStatsResponse{Happiness: &dto.HappinessStats{AverageRating: 4.5, TotalFeedbacks: 2}}, nil
}

func TestFeedbackController(t *testing.T) {
	user := uuid.New()

	t.Run("stats are public", func(t *testing.T) {
		app := newTestApp(NewFeedbackController(&fakeFeedbackService{}))
		status, body := doJSON(t, app, http.MethodGet, "/api/feedback/v1/stats", uuid.Nil, nil)
		assert.Equal(t, http.StatusOK, status)
		data := body["data"].(map[string]interface{})
		assert.Nil(t, data["accuracy"])
		assert.Equal(t, 4.5, data["happiness"].(map[string]interface{})["averageRating"])
	})

	t.Run("submit needs a token", func(t *testing.T) {
		app := newTestApp(NewFeedbackController(&fakeFeedbackService{}))
		status, body := doJSON(t, app, http.MethodPost, "/api/feedback/v1", uuid.Nil, map[string]interface{}{})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "UNAUTHORIZED", body["kind"])
	})

	t.Run("invalid body", func(t *testing.T) {
		svc := &fakeFeedbackService{}
		app := newTestApp(NewFeedbackController(svc))
		status, body := doJSON(t, app, http.MethodPost, "/api/feedback/v1", user, map[string]interface{}{
			"assessmentId": uuid.NewString(),
			"rating":       9,
			"isAccurate":   true,
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.NotEmpty(t, body["errors"])
		assert.Empty(t, svc.submitted)
	})

	t.Run("submitted", func(t *testing.T) {
		svc := &fakeFeedbackService{}
		app := newTestApp(NewFeedbackController(svc))
		status, _ := doJSON(t, app, http.MethodPost, "/api/feedback/v1", user, map[string]interface{}{
			"assessmentId": uuid.NewString(),
			"rating":       4,
			"isAccurate":   false,
		})
		assert.Equal(t, http.StatusCreated, status)
		require.Len(t, svc.submitted, 1)
		assert.False(t, *svc.submitted[0].IsAccurate)
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		app := newTestApp(NewFeedbackController(&fakeFeedbackService{err: apperror.Conflict("Feedback has already been submitted and cannot be changed")}))
		status, body := doJSON(t, app, http.MethodPost, "/api/feedback/v1", user, map[string]interface{}{
			"assessmentId": uuid.NewString(),
			"rating":       4,
			"isAccurate":   true,
		})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, false, body["success"])
	})

	t.Run("bad assessment id", func(t *testing.T) {
		app := newTestApp(NewFeedbackController(&fakeFeedbackService{}))
		status, _ := doJSON(t, app, http.MethodGet, "/api/feedback/v1/not-a-uuid", user, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

type fakeRoadmapService struct {
	lastTask string
	err      error
}

func (f *fakeRoadmapService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateRoadmapRequest) (*dto.RoadmapResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.RoadmapResponse{Duration: req.Duration}, nil
}

func (f *fakeRoadmapService) Get(ctx context.Context, userId uuid.UUID) (*dto.RoadmapResponse, error) {
	return nil, apperror.NotFound("Roadmap not found")
}

func (f *fakeRoadmapService) SetTaskStatus(ctx context.Context, userId uuid.UUID, taskId string, req *dto.UpdateTaskStatusRequest) (*dto.RoadmapResponse, error) {
	f.lastTask = taskId
	return &dto.RoadmapResponse{CompletedTasks: 1}, nil
}

func TestRoadmapController(t *testing.T) {
	user := uuid.New()

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		err    error
		want   int
	}{
		{name: "generate", method: http.MethodPost, path: "/api/roadmap/v1", body: map[string]int{"duration": 6}, want: http.StatusCreated},
		{name: "unsupported duration", method: http.MethodPost, path: "/api/roadmap/v1", body: map[string]int{"duration": 5}, want: http.StatusBadRequest},
		{name: "model down", method: http.MethodPost, path: "/api/roadmap/v1", body: map[string]int{"duration": 3}, err: apperror.ExternalService("down", nil), want: http.StatusBadGateway},
		{name: "missing roadmap", method: http.MethodGet, path: "/api/roadmap/v1", want: http.StatusNotFound},
		{name: "task update", method: http.MethodPatch, path: "/api/roadmap/v1/tasks/m1-t2", body: map[string]bool{"completed": true}, want: http.StatusOK},
		{name: "task update without flag", method: http.MethodPatch, path: "/api/roadmap/v1/tasks/m1-t2", body: map[string]string{}, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRoadmapService{err: tt.err}
			app := newTestApp(NewRoadmapController(svc))
			status, _ := doJSON(t, app, tt.method, tt.path, user, tt.body)
			assert.Equal(t, tt.want, status)
		})
	}

	t.Run("task id reaches the service", func(t *testing.T) {
		svc := &fakeRoadmapService{}
		app := newTestApp(NewRoadmapController(svc))
		_, _ = doJSON(t, app, http.MethodPatch, "/api/roadmap/v1/tasks/m2-t1", user, map[string]bool{"completed": false})
		assert.Equal(t, "m2-t1", svc.lastTask)
	})
}

type fakeValidationService struct {
	filename string
	size     int
}

func (f *fakeValidationService) ExtractResume(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.ResumeExtractionResponse, error) {
	f.filename, f.size = filename, len(data)
	return &dto.ResumeExtractionResponse{}, nil
}

func (f *fakeValidationService) StartValidation(ctx context.Context, userId uuid.UUID, req *dto.StartValidationRequest) (*dto.InterviewSessionResponse, error) {
	return &dto.InterviewSessionResponse{Id: "s1", Flow: "validation"}, nil
}

func (f *fakeValidationService) GetSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.InterviewSessionResponse, error) {
	return nil, apperror.NotFound("Interview session not found")
}

func (f *fakeValidationService) SubmitAnswer(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.SubmitAnswerRequest) (*dto.InterviewSessionResponse, error) {
	return &dto.InterviewSessionResponse{Id: sessionId}, nil
}

func (f *fakeValidationService) CompleteLayer(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.CompleteLayerRequest) (*dto.InterviewStepResponse, error) {
	return &dto.InterviewStepResponse{}, nil
}

func (f *fakeValidationService) Submit(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.InterviewStepResponse, error) {
	return &dto.InterviewStepResponse{}, nil
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/validation/v1/resume", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestValidationController_UploadResume(t *testing.T) {
	user := uuid.New()

	t.Run("file forwarded", func(t *testing.T) {
		svc := &fakeValidationService{}
		app := newTestApp(NewValidationController(svc))
		req := multipartRequest(t, "file", "cv.pdf", []byte("%PDF-1.4 fake"))
		req.Header.Set("X-User", user.String())

		status, _ := send(t, app, req)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "cv.pdf", svc.filename)
		assert.Equal(t, 13, svc.size)
	})

	t.Run("wrong field", func(t *testing.T) {
		app := newTestApp(NewValidationController(&fakeValidationService{}))
		req := multipartRequest(t, "resume", "cv.pdf", []byte("x"))
		req.Header.Set("X-User", user.String())

		status, body := send(t, app, req)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Resume file is required", body["message"])
	})

	t.Run("unknown session", func(t *testing.T) {
		app := newTestApp(NewValidationController(&fakeValidationService{}))
		status, _ := doJSON(t, app, http.MethodGet, "/api/validation/v1/session/abc", user, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("layer without body", func(t *testing.T) {
		app := newTestApp(NewValidationController(&fakeValidationService{}))
		req := httptest.NewRequest(http.MethodPost, "/api/validation/v1/session/abc/layer", nil)
		req.Header.Set("X-User", user.String())
		status, _ := send(t, app, req)
		assert.Equal(t, http.StatusOK, status)
	})
}
