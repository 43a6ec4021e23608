package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openlearn/edulearn-api/internal/dto"
	"github.com/openlearn/edulearn-api/internal/handler"
	"github.com/openlearn/edulearn-api/internal/models"
	"github.com/openlearn/edulearn-api/internal/repository"
	"github.com/openlearn/edulearn-api/internal/service"
	"github.com/openlearn/edulearn-api/internal/utils"
)

type noopUploader struct{}

func (noopUploader) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	return "https://files.test/" + name, nil
}

type submissionFixture struct {
	app        *fiber.App
	db         *gorm.DB
	assignment models.Assignment
	questions  []models.AssignmentQuestion
	accountID  uint
}

func setupSubmissionFixture(t *testing.T) submissionFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Learner{},
		&models.Course{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.Question{},
		&models.Option{},
		&models.AssignmentQuestion{},
		&models.Submission{},
		&models.Answer{},
		&models.SubmissionAsset{},
	))

	account := models.Account{Email: fmt.Sprintf("learner-%d@example.com", time.Now().UnixNano()), PasswordHash: "hashed", Role: models.AccountRoleLearner}
	require.NoError(t, db.Create(&account).Error)

	learner := models.Learner{AccountID: account.ID, Name: "Mika"}
	require.NoError(t, db.Create(&learner).Error)

	course := models.Course{Title: "Intro", Code: fmt.Sprintf("course-%d", time.Now().UnixNano())}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&models.Enrollment{CourseID: course.ID, LearnerID: learner.ID}).Error)

	assignment := models.Assignment{
		CourseID:         course.ID,
		Title:            "Weekly Quiz",
		Type:             models.AssignmentTypeQuiz,
		Status:           models.AssignmentStatusActive,
		ShowAnswersAfter: models.ShowAnswersAfterSubmission,
	}
	require.NoError(t, db.Create(&assignment).Error)

	boolean := models.Question{Content: "Water boils at 100C.", Kind: models.QuestionTrueFalse, Answer: "true", Points: 1}
	blank := models.Question{Content: "Capital of France?", Kind: models.QuestionFillInBlank, Answer: "Paris", Points: 1}
	require.NoError(t, db.Create(&boolean).Error)
	require.NoError(t, db.Create(&blank).Error)

	first := models.AssignmentQuestion{AssignmentID: assignment.ID, QuestionID: boolean.ID, Position: 1}
	second := models.AssignmentQuestion{AssignmentID: assignment.ID, QuestionID: blank.ID, Position: 2}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := service.NewSubmissionService(
		repository.NewSubmissionRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewLearnerRepository(db),
		validate,
		noopUploader{},
		nil,
		zerolog.Nop(),
	)
	h := handler.NewSubmissionHandler(svc, zerolog.Nop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("account_id", account.ID)
		c.Locals("account_role", models.AccountRoleLearner)
		return c.Next()
	})

	assignments := app.Group("/api/v1/assignments")
	h.RegisterAssignmentRoutes(assignments, nil)
	h.Register(app.Group("/api/v1/submissions"))

	return submissionFixture{
		app:        app,
		db:         db,
		assignment: assignment,
		questions:  []models.AssignmentQuestion{first, second},
		accountID:  account.ID,
	}
}

func submitRequest(t *testing.T, assignmentID uint, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/assignments/%d/submit", assignmentID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeEnvelope(t *testing.T, resp *http.Response, out interface{}) utils.APIResponse {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	if out != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}

	return utils.APIResponse{Success: envelope.Success, Message: envelope.Message}
}

func TestSubmitEndpointGradesAndReturnsCreated(t *testing.T) {
	fixture := setupSubmissionFixture(t)

	answers := fmt.Sprintf(`{"%d":"true","%d":"paris"}`, fixture.questions[0].ID, fixture.questions[1].ID)
	resp, err := fixture.app.Test(submitRequest(t, fixture.assignment.ID, map[string]string{"answers": answers}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var submission dto.SubmissionResponse
	envelope := decodeEnvelope(t, resp, &submission)
	require.True(t, envelope.Success)
	require.Equal(t, float64(100), submission.Score)
	require.Equal(t, models.SubmissionStatusSubmitted, submission.Status)
	require.Equal(t, fixture.assignment.ID, submission.AssignmentID)
}

func TestSubmitEndpointRejectsSecondAttempt(t *testing.T) {
	fixture := setupSubmissionFixture(t)

	answers := fmt.Sprintf(`{"%d":"true"}`, fixture.questions[0].ID)
	resp, err := fixture.app.Test(submitRequest(t, fixture.assignment.ID, map[string]string{"answers": answers}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = fixture.app.Test(submitRequest(t, fixture.assignment.ID, map[string]string{"answers": answers}))
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	envelope := decodeEnvelope(t, resp, nil)
	require.False(t, envelope.Success)

	var count int64
	require.NoError(t, fixture.db.Model(&models.Submission{}).
		Where("assignment_id = ?", fixture.assignment.ID).
		Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSubmitEndpointRejectsMalformedAnswers(t *testing.T) {
	fixture := setupSubmissionFixture(t)

	resp, err := fixture.app.Test(submitRequest(t, fixture.assignment.ID, map[string]string{"answers": `{"zero":"x"}`}))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = fixture.app.Test(submitRequest(t, fixture.assignment.ID, map[string]string{"answers": `not json`}))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitEndpointUnknownAssignmentIs404(t *testing.T) {
	fixture := setupSubmissionFixture(t)

	resp, err := fixture.app.Test(submitRequest(t, fixture.assignment.ID+10000, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResultsEndpointShowsVerdictsAndAnswers(t *testing.T) {
	fixture := setupSubmissionFixture(t)

	answers := fmt.Sprintf(`{"%d":"true","%d":"Rome"}`, fixture.questions[0].ID, fixture.questions[1].ID)
	resp, err := fixture.app.Test(submitRequest(t, fixture.assignment.ID, map[string]string{"answers": answers}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/assignments/%d/results", fixture.assignment.ID), nil)
	resp, err = fixture.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results dto.ResultsResponse
	decodeEnvelope(t, resp, &results)
	require.True(t, results.ShowAnswers)
	require.Equal(t, float64(50), results.Score)
	require.Len(t, results.Questions, 2)
	require.Equal(t, "correct", results.Questions[0].Verdict)
	require.Equal(t, "incorrect", results.Questions[1].Verdict)
	require.NotNil(t, results.Questions[1].CorrectAnswer)
	require.Equal(t, "Paris", *results.Questions[1].CorrectAnswer)
}

func TestResultsEndpointBeforeSubmissionIs404(t *testing.T) {
	fixture := setupSubmissionFixture(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/assignments/%d/results", fixture.assignment.ID), nil)
	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetSubmissionEndpointEnforcesOwnership(t *testing.T) {
	fixture := setupSubmissionFixture(t)

	answers := fmt.Sprintf(`{"%d":"true"}`, fixture.questions[0].ID)
	resp, err := fixture.app.Test(submitRequest(t, fixture.assignment.ID, map[string]string{"answers": answers}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.SubmissionResponse
	decodeEnvelope(t, resp, &created)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/submissions/%d", created.ID), nil)
	resp, err = fixture.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var intruder models.Account
	intruder.Email = fmt.Sprintf("other-%d@example.com", time.Now().UnixNano())
	intruder.PasswordHash = "hashed"
	intruder.Role = models.AccountRoleLearner
	require.NoError(t, fixture.db.Create(&intruder).Error)
	require.NoError(t, fixture.db.Create(&models.Learner{AccountID: intruder.ID, Name: "Noa"}).Error)

	other := fiber.New()
	other.Use(func(c *fiber.Ctx) error {
		c.Locals("account_id", intruder.ID)
		return c.Next()
	})
	svc := service.NewSubmissionService(
		repository.NewSubmissionRepository(fixture.db),
		repository.NewAssignmentRepository(fixture.db),
		repository.NewEnrollmentRepository(fixture.db),
		repository.NewLearnerRepository(fixture.db),
		validator.New(validator.WithRequiredStructEnabled()),
		noopUploader{},
		nil,
		zerolog.Nop(),
	)
	handler.NewSubmissionHandler(svc, zerolog.Nop()).Register(other.Group("/api/v1/submissions"))

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/submissions/%d", created.ID), nil)
	resp, err = other.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
