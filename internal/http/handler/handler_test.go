package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campusapi/internal/http/middleware"
	"campusapi/internal/model"
	"campusapi/internal/service"
	serviceMocks "campusapi/internal/service/mocks"
	"campusapi/internal/validation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoot(t *testing.T) {
	app := fiber.New()
	app.Get("/", Root(AppInfo{Name: "Campus API", Version: "1.0.0", DocsURL: "/swagger/index.html"}))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "/swagger/index.html", body["docs_url"])
}

func TestListStudents(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Get("/students", ListStudents(mockSvc))

	t.Run("defaults", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 0, 100).Return([]model.Student{{ID: 1, Name: "A"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result []model.Student
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 5).Return([]model.Student{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students?skip=10&limit=5", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(raw))
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students?limit=abc", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		assert.Contains(t, body.Details, "limit")
	})

	t.Run("database down", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 0, 100).Return(nil, fmt.Errorf("%w: boom", service.ErrUnavailable)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		body := decodeError(t, resp)
		assert.NotContains(t, body.Message, "boom")
	})
}

func TestGetStudent(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Get("/students/:id", GetStudent(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(7)).Return(&model.Student{ID: 7, Email: "a@example.com"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students/7", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Student
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(7), result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(99)).Return(nil, fmt.Errorf("%w: student 99", service.ErrNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students/99", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students/abc", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		assert.Contains(t, body.Details, "id")
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(3)).Return(nil, errors.New("unexpected")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students/3", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Code)
	})
}

func TestCreateStudent(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Post("/students", CreateStudent(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.RequestIDHeader, "rid-1")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("created", func(t *testing.T) {
		want := validation.CreateStudentRequest{Name: "A", Email: "a@example.com", Age: intPtr(0), Grade: "12A1"}
		mockSvc.On("Create", mock.Anything, want).
			Return(&model.Student{ID: 1, Name: "A", Email: "a@example.com", Age: 0, Grade: "12A1"}, nil).Once()

		resp := post(`{"name":"A","email":"a@example.com","age":0,"grade":"12A1"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result model.Student
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(1), result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("wrong type", func(t *testing.T) {
		resp := post(`{"name":"A","email":"a@example.com","age":"old","grade":"1"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Contains(t, body.Details, "age")
		assert.Equal(t, "rid-1", body.RequestID)
	})

	t.Run("malformed json", func(t *testing.T) {
		resp := post(`{"name":`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, decodeError(t, resp).Details, "body")
	})

	t.Run("empty body", func(t *testing.T) {
		resp := post("")

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: email taken", service.ErrConflict)).Once()

		resp := post(`{"name":"B","email":"a@example.com","age":3,"grade":"1"}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", decodeError(t, resp).Code)
	})

	t.Run("validation details", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.NewValidationError(map[string]string{"email": "value is not a valid email address"})).Once()

		resp := post(`{"name":"B","email":"nope","age":3,"grade":"1"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "value is not a valid email address", decodeError(t, resp).Details["email"])
	})
}

func TestUpdateStudent(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Put("/students/:id", UpdateStudent(mockSvc))

	put := func(path, body string) *http.Response {
		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("partial", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(5), validation.UpdateStudentRequest{Age: intPtr(19)}).
			Return(&model.Student{ID: 5, Age: 19}, nil).Once()

		resp := put("/students/5", `{"age":19}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(6), mock.Anything).Return(nil, fmt.Errorf("%w: student 6", service.ErrNotFound)).Once()

		resp := put("/students/6", `{"age":19}`)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := put("/students/0", `{"age":19}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestDeleteStudent(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Delete("/students/:id", DeleteStudent(mockSvc))

	mockSvc.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
	mockSvc.On("Delete", mock.Anything, int64(1)).Return(fmt.Errorf("%w: student 1", service.ErrNotFound)).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/students/1", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, "/students/1", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)

	mockSvc.AssertExpectations(t)
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents", ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.DocumentList{
			Total:       1,
			TotalChunks: 3,
			Documents:   []model.DocumentSummary{{ID: "c1", Filename: "A.pdf", ChunkCount: 3}},
		}
		mockSvc.On("ListAll", mock.Anything).Return(expected, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.DocumentList
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, *expected, result)
		mockSvc.AssertExpectations(t)
	})

	t.Run("store unavailable", func(t *testing.T) {
		mockSvc.On("ListAll", mock.Anything).Return(nil, fmt.Errorf("%w: list chunks", service.ErrUnavailable)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Code)
	})
}

func TestSearchDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/search", SearchDocuments(mockSvc))

	t.Run("matches", func(t *testing.T) {
		mockSvc.On("SearchByFilename", mock.Anything, "Quy").
			Return([]model.DocumentSummary{{Filename: "Noi_Quy.docx"}, {Filename: "Quy_che.pdf"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/search?filename=Quy", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result []model.DocumentSummary
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 2)
	})

	t.Run("missing filename", func(t *testing.T) {
		mockSvc.On("SearchByFilename", mock.Anything, "").
			Return(nil, service.NewValidationError(map[string]string{"filename": "field required"})).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/search", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestDocumentStats(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/stats", DocumentStats(mockSvc))

	mockSvc.On("Stats", mock.Anything).Return(&model.DocumentStats{
		TotalFiles:     2,
		TotalChunks:    8,
		StoragePath:    "./chroma_db_store",
		EmbeddingModel: "models/text-embedding-004",
	}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/stats", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, float64(2), body["total_files"])
	assert.Equal(t, float64(8), body["total_chunks"])
	assert.Equal(t, "./chroma_db_store", body["storage_path"])
	assert.Equal(t, "models/text-embedding-004", body["embedding_model"])
}

func TestDeleteDocumentBySource(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/documents/source/:filename", DeleteDocumentBySource(mockSvc))

	t.Run("escaped filename", func(t *testing.T) {
		mockSvc.On("DeleteBySource", mock.Anything, "Quy che.pdf").
			Return(&model.DeleteResult{Status: "success", Message: "Deleted document: Quy che.pdf", DeletedChunks: 4}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/documents/source/Quy%20che.pdf", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body model.DeleteResult
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, 4, body.DeletedChunks)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown filename", func(t *testing.T) {
		mockSvc.On("DeleteBySource", mock.Anything, "missing.pdf").
			Return(nil, fmt.Errorf("%w: document missing.pdf", service.ErrNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/documents/source/missing.pdf", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteAllDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/documents", DeleteAllDocuments(mockSvc))

	mockSvc.On("DeleteAll", mock.Anything).
		Return(&model.DeleteResult{Status: "success", Message: "All documents have been deleted", DeletedChunks: 8}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/documents", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body model.DeleteResult
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, 8, body.DeletedChunks)
	mockSvc.AssertExpectations(t)
}

func TestSnapshotDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents/snapshot", SnapshotDocuments(mockSvc))

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Snapshot", mock.Anything).Return(&model.Snapshot{Key: "snapshots/documents/x.gob", Size: 10, URL: "http://minio/x"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/documents/snapshot", nil))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("not configured", func(t *testing.T) {
		mockSvc.On("Snapshot", mock.Anything).Return(nil, fmt.Errorf("%w: snapshots are not configured", service.ErrUnavailable)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/documents/snapshot", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	students := new(serviceMocks.MockStudentService)
	docs := new(serviceMocks.MockDocumentService)
	RegisterRoutes(app, Routes{
		Students:  students,
		Documents: docs,
		APIPrefix: "/api/v1",
		Info:      AppInfo{Name: "Campus API", Version: "1.0.0"},
	})

	t.Run("not found route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Code)
	})

	t.Run("trailing slash optional", func(t *testing.T) {
		students.On("List", mock.Anything, 0, 100).Return([]model.Student{}, nil).Twice()

		for _, path := range []string{"/api/v1/students", "/api/v1/students/"} {
			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
		students.AssertExpectations(t)
	})

	t.Run("search is not shadowed", func(t *testing.T) {
		docs.On("SearchByFilename", mock.Anything, "pdf").Return([]model.DocumentSummary{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/documents/search?filename=pdf", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		docs.AssertExpectations(t)
	})

	t.Run("health without database", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
