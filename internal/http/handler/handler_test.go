package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"profileviews/internal/model"
	"profileviews/internal/repository"
	"profileviews/internal/service"
	serviceMocks "profileviews/internal/service/mocks"
	"profileviews/internal/wantedly"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})

	t.Run("no database", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(nil))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHello(t *testing.T) {
	app := fiber.New()
	app.Get("/hello", Hello())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/hello", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body helloResponse
	json.NewDecoder(resp.Body).Decode(&body)
	assert.NotEmpty(t, body.Message)
}

func TestEcho(t *testing.T) {
	app := fiber.New()
	app.Post("/echo", Echo())

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "echoes text", body: `{"text":"こんにちは"}`, wantStatus: http.StatusOK, wantBody: `{"text":"こんにちは"}`},
		{name: "missing text", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed", body: `{"text":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				b, _ := io.ReadAll(resp.Body)
				assert.JSONEq(t, tt.wantBody, string(b))
			}
		})
	}
}

func TestImportSnapshot(t *testing.T) {
	doc := `{"data":{"profileImpressionPage":{"impressedUsers":{"edges":[]}}}}`
	snapshotAt := time.Date(2025, 11, 23, 4, 28, 22, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockImportService)
		app := fiber.New()
		app.Post("/imports", ImportSnapshot(mockSvc))
		mockSvc.On("Import", mock.Anything, []byte(doc), mock.MatchedBy(snapshotAt.Equal)).Return(3, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/imports?snapshot_at=2025-11-23T13:28:22%2B09:00", strings.NewReader(doc))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body importResponse
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, 3, body.Imported)
		mockSvc.AssertExpectations(t)
	})

	t.Run("request validation", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockImportService)
		app := fiber.New()
		app.Post("/imports", ImportSnapshot(mockSvc))

		tests := []struct {
			name     string
			target   string
			body     string
			wantCode string
		}{
			{name: "missing snapshot_at", target: "/imports", body: doc, wantCode: "INVALID_SNAPSHOT_AT"},
			{name: "bad snapshot_at", target: "/imports?snapshot_at=yesterday", body: doc, wantCode: "INVALID_SNAPSHOT_AT"},
			{name: "empty body", target: "/imports?snapshot_at=2025-11-23T04:28:22Z", body: "", wantCode: "BODY_REQUIRED"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp, _ := app.Test(httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body)))

				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				var res errorPayload
				json.NewDecoder(resp.Body).Decode(&res)
				assert.Equal(t, tt.wantCode, res.Error.Code)
			})
		}
		mockSvc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("import failures", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{
				name:       "structure mismatch",
				err:        &wantedly.StructureMismatchError{Path: wantedly.EdgesPath, At: "data"},
				wantStatus: http.StatusUnprocessableEntity,
				wantCode:   "STRUCTURE_MISMATCH",
			},
			{
				name:       "missing node",
				err:        &wantedly.MissingNodeError{Index: 4},
				wantStatus: http.StatusUnprocessableEntity,
				wantCode:   "MISSING_NODE",
			},
			{
				name:       "decode error",
				err:        &service.EdgeError{Index: 0, Err: &wantedly.NodeDecodeError{Err: errors.New("userId")}},
				wantStatus: http.StatusUnprocessableEntity,
				wantCode:   "NODE_DECODE_ERROR",
			},
			{
				name:       "unrecognized date",
				err:        &service.EdgeError{Index: 0, Err: &wantedly.UnrecognizedDateTokenError{Raw: "先週"}},
				wantStatus: http.StatusUnprocessableEntity,
				wantCode:   "UNRECOGNIZED_DATE_TOKEN",
			},
			{
				name:       "storage error",
				err:        &service.EdgeError{Index: 2, Err: &repository.StorageError{Op: "upsert profile view", Err: errors.New("conn reset")}},
				wantStatus: http.StatusInternalServerError,
				wantCode:   "STORAGE_ERROR",
			},
			{
				name:       "unknown",
				err:        errors.New("boom"),
				wantStatus: http.StatusInternalServerError,
				wantCode:   "INTERNAL_ERROR",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockSvc := new(serviceMocks.MockImportService)
				app := fiber.New()
				app.Post("/imports", ImportSnapshot(mockSvc))
				mockSvc.On("Import", mock.Anything, mock.Anything, mock.Anything).Return(0, tt.err).Once()

				req := httptest.NewRequest(http.MethodPost, "/imports?snapshot_at=2025-11-23T04:28:22Z", strings.NewReader(doc))
				resp, _ := app.Test(req)

				assert.Equal(t, tt.wantStatus, resp.StatusCode)
				var res errorPayload
				json.NewDecoder(resp.Body).Decode(&res)
				assert.Equal(t, tt.wantCode, res.Error.Code)
				mockSvc.AssertExpectations(t)
			})
		}
	})
}

func TestListProfileViews(t *testing.T) {
	mockSvc := new(serviceMocks.MockProfileViewService)
	app := fiber.New()
	app.Get("/profile-views", ListProfileViews(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.ProfileViewListResult{
			Items: []model.ProfileViewRaw{{ID: 1, ViewerUserID: "42", ViewedAtRaw: "今日"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 10, 0).Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/profile-views?limit=10&offset=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ProfileViewListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, "42", result.Items[0].ViewerUserID)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile-views?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})

	t.Run("invalid offset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile-views?offset=x", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_OFFSET", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 20, 0).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/profile-views", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetProfileView(t *testing.T) {
	mockSvc := new(serviceMocks.MockProfileViewService)
	app := fiber.New()
	app.Get("/profile-views/:id", GetProfileView(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.ProfileViewRaw{ID: 7, ViewerUserID: "42"}
		mockSvc.On("Get", mock.Anything, int64(7)).Return(expected, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/profile-views/7", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.ProfileViewRaw
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(7), result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(8)).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/profile-views/8", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/profile-views/abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})

	t.Run("non-positive id", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(0)).Return(nil, service.ErrInvalidID).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/profile-views/0", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(9)).Return(nil, sql.ErrConnDone).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/profile-views/9", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "routing_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	RegisterRoutes(app, nil, new(serviceMocks.MockImportService), new(serviceMocks.MockProfileViewService), reg)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(b), "routing_test_total 1")
	})
}
