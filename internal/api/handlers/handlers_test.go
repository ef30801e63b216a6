package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/portfolio-api/internal/api/middleware"
	"github.com/osa911/portfolio-api/internal/logging"
	"github.com/osa911/portfolio-api/internal/models"
	"github.com/osa911/portfolio-api/internal/repository"
	"github.com/osa911/portfolio-api/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logging.SetGlobalLogger(logging.NewTestLogger(io.Discard))
	os.Exit(m.Run())
}

// Mock repository whose every call fails
type failingRepository struct{}

func (failingRepository) CreateContact(ctx context.Context, in models.NewContact) (models.Contact, error) {
	return models.Contact{}, &repository.StorageError{Op: "insert contact", Err: errors.New("connection refused")}
}

func (failingRepository) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return nil, &repository.StorageError{Op: "list contacts", Err: errors.New("connection refused")}
}

func (failingRepository) CreateServiceInquiry(ctx context.Context, in models.NewServiceInquiry) (models.ServiceInquiry, error) {
	return models.ServiceInquiry{}, &repository.StorageError{Op: "insert inquiry", Err: errors.New("connection refused")}
}

func (failingRepository) ListServiceInquiries(ctx context.Context) ([]models.ServiceInquiry, error) {
	return nil, &repository.StorageError{Op: "list inquiries", Err: errors.New("connection refused")}
}

// Mock Pinger
type mockPinger struct {
	err error
}

func (m mockPinger) Ping(ctx context.Context) error {
	return m.err
}

func newRouter(repo service.SubmissionRepository) *gin.Engine {
	submissions := service.NewSubmissionService(repo)
	audit := service.NewAuditService()
	contact := NewContactHandler(submissions, audit)
	inquiry := NewServiceInquiryHandler(submissions, audit)
	validation := middleware.NewValidationMiddleware()

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.PreserveRequestBody(middleware.DefaultMaxBodySize))
	router.POST("/api/contacts", validation.DecodeContactRequest(), contact.Submit)
	router.GET("/api/contacts", contact.List)
	router.POST("/api/service-inquiry", validation.DecodeServiceInquiryRequest(), inquiry.Submit)
	router.GET("/api/service-inquiries", inquiry.List)
	router.GET("/api/google-sheets-setup", NewSheetsSetupHandler().Get)
	return router
}

func do(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	return w, decoded
}

func errorFields(t *testing.T, body map[string]interface{}) []string {
	t.Helper()
	raw, ok := body["errors"].([]interface{})
	require.True(t, ok, "errors should be a list: %v", body)
	fields := make([]string, 0, len(raw))
	for _, e := range raw {
		fields = append(fields, e.(map[string]interface{})["field"].(string))
	}
	return fields
}

func TestContactSubmit(t *testing.T) {
	router := newRouter(repository.NewMemoryStore())

	w, body := do(t, router, http.MethodPost, "/api/contacts", `{
		"name": "  Ana   López ",
		"email": "ANA@Example.com",
		"projectDescription": "A shop",
		"service": "ecommerce",
		"country": ""
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["sheetsIntegration"])
	assert.NotContains(t, body, "whatsappUrl")

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Ana López", data["name"])
	assert.Equal(t, "ANA@example.com", data["email"])
	assert.Equal(t, "ecommerce", data["service"])
	assert.Nil(t, data["country"])
	assert.NotEmpty(t, data["createdAt"])
}

func TestContactSubmitRejections(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			name:       "missing required fields",
			body:       `{"name":"Ana"}`,
			wantFields: []string{"email", "projectDescription"},
		},
		{
			name:       "blank name and bad email",
			body:       `{"name":"   ","email":"not-an-email","projectDescription":"x"}`,
			wantFields: []string{"name", "email"},
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantFields: []string{"body"},
		},
		{
			name:       "wrong type",
			body:       `{"name":123,"email":"a@b.co","projectDescription":"x"}`,
			wantFields: []string{"name"},
		},
		{
			name:       "trailing data",
			body:       `{"name":"A","email":"a@b.co","projectDescription":"x"} {}`,
			wantFields: []string{"body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repository.NewMemoryStore()
			router := newRouter(store)

			w, body := do(t, router, http.MethodPost, "/api/contacts", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, body["success"])
			assert.ElementsMatch(t, tt.wantFields, errorFields(t, body))

			contacts, err := store.ListContacts(context.Background())
			require.NoError(t, err)
			assert.Empty(t, contacts)
		})
	}
}

func TestContactSubmitEmptyBody(t *testing.T) {
	router := newRouter(repository.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/contacts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStorageFailureReturns500(t *testing.T) {
	router := newRouter(failingRepository{})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"submit contact", http.MethodPost, "/api/contacts", `{"name":"A","email":"a@b.co","projectDescription":"x"}`},
		{"submit inquiry", http.MethodPost, "/api/service-inquiry", `{"name":"A","email":"a@b.co","service":"seo"}`},
		{"list contacts", http.MethodGet, "/api/contacts", ""},
		{"list inquiries", http.MethodGet, "/api/service-inquiries", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, false, body["success"])
			errBody := body["error"].(map[string]interface{})
			assert.Equal(t, "INTERNAL_SERVER_ERROR", errBody["code"])
		})
	}
}

func TestListContactsNewestFirst(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := repository.NewMemoryStore(repository.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	router := newRouter(store)

	for _, name := range []string{"First", "Second"} {
		w, _ := do(t, router, http.MethodPost, "/api/contacts",
			`{"name":"`+name+`","email":"a@b.co","projectDescription":"x"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, body := do(t, router, http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "Second", data[0].(map[string]interface{})["name"])
	assert.Equal(t, "First", data[1].(map[string]interface{})["name"])
}

func TestListEmptyIsArray(t *testing.T) {
	router := newRouter(repository.NewMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/service-inquiries", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestServiceInquirySubmit(t *testing.T) {
	router := newRouter(repository.NewMemoryStore())

	w, body := do(t, router, http.MethodPost, "/api/service-inquiry",
		`{"name":"Bo","email":"bo@x.io","service":"seo","message":"line one\r\nline two"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "seo", data["service"])
	assert.Equal(t, "line one\nline two", data["message"])

	w, body = do(t, router, http.MethodPost, "/api/service-inquiry", `{"name":"Bo","email":"bo@x.io"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"service"}, errorFields(t, body))
}

func TestSheetsSetup(t *testing.T) {
	router := newRouter(repository.NewMemoryStore())

	w, body := do(t, router, http.MethodGet, "/api/google-sheets-setup", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data["scriptCode"], "function doPost(e)")
	assert.Len(t, data["instructions"], 5)
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{"store reachable", nil, http.StatusOK},
		{"store down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthHandler(mockPinger{err: tt.pingErr}, "memory", "webhook").Check)

			w, body := do(t, router, http.MethodGet, "/health", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.pingErr == nil {
				data := body["data"].(map[string]interface{})
				assert.Equal(t, "ok", data["status"])
				assert.Equal(t, "memory", data["store"])
				assert.Equal(t, "webhook", data["sheets"])
				assert.Contains(t, data, "build")
			} else {
				assert.Equal(t, "SERVICE_UNAVAILABLE", body["error"].(map[string]interface{})["code"])
			}
		})
	}
}
