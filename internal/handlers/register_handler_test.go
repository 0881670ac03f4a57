package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sumitk/ai-interviewer/internal/models"
	"sumitk/ai-interviewer/internal/repositories"
	"sumitk/ai-interviewer/internal/services"
)

type fakeCandidateRepo struct {
	candidates map[uuid.UUID]*models.Candidate
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{candidates: make(map[uuid.UUID]*models.Candidate)}
}

func (f *fakeCandidateRepo) Create(c *models.Candidate) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.candidates[c.ID] = c
	return nil
}

func (f *fakeCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return c, nil
}

func (f *fakeCandidateRepo) EmailExists(email string) (bool, error) {
	for _, c := range f.candidates {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCandidateRepo) DeleteAll() error {
	f.candidates = make(map[uuid.UUID]*models.Candidate)
	return nil
}

type fakeResumeProcessor struct{}

func (fakeResumeProcessor) Process(string) (*models.ResumeAnalysis, error) {
	return &models.ResumeAnalysis{
		RawText:            "Excel analyst with pivot table experience.",
		HasExcelExperience: true,
		Skills:             []string{"excel"},
		ExcelProficiency:   "Intermediate",
	}, nil
}

func newRegisterApp(t *testing.T) (*fiber.App, *fakeCandidateRepo) {
	t.Helper()
	repo := newFakeCandidateRepo()
	storage := services.NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	handler := NewRegisterHandler(repo, storage, fakeResumeProcessor{}, 10*1024*1024)

	app := fiber.New()
	app.Post("/api/v1/register", handler.HandleRegister)
	return app, repo
}

func multipartRegisterBody(t *testing.T, email, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if email != "" {
		require.NoError(t, writer.WriteField("email", email))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 dummy content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doRegister(t *testing.T, app *fiber.App, email, filename string) *http.Response {
	t.Helper()
	body, contentType := multipartRegisterBody(t, email, filename)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/register", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHandleRegister_Success(t *testing.T) {
	app, repo := newRegisterApp(t)

	resp := doRegister(t, app, "alice@example.com", "resume.pdf")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out models.RegisterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "REGISTERED", out.Status)
	assert.NotEmpty(t, out.CandidateID)
	require.NotNil(t, out.ResumeAnalysis)
	assert.Equal(t, "Intermediate", out.ResumeAnalysis.ExcelProficiency)

	exists, err := repo.EmailExists("alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	app, _ := newRegisterApp(t)

	resp := doRegister(t, app, "bob@example.com", "resume.pdf")
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRegister(t, app, "bob@example.com", "resume.pdf")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandleRegister_InvalidEmail(t *testing.T) {
	app, _ := newRegisterApp(t)

	resp := doRegister(t, app, "not-an-email", "resume.pdf")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleRegister_MissingResume(t *testing.T) {
	app, _ := newRegisterApp(t)

	resp := doRegister(t, app, "carol@example.com", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleRegister_NonPDFRejected(t *testing.T) {
	app, repo := newRegisterApp(t)

	resp := doRegister(t, app, "dave@example.com", "resume.docx")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	exists, err := repo.EmailExists("dave@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
