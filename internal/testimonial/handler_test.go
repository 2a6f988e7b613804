package testimonial

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rsydfhmy03/SEA-Catering/internal/api"
	"github.com/rsydfhmy03/SEA-Catering/internal/apperr"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, req SubmitRequest) (*Testimonial, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Testimonial), args.Error(1)
}

func (m *MockService) ListApproved(ctx context.Context, limit, offset int) ([]Testimonial, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Testimonial), args.Error(1)
}

func (m *MockService) ListAll(ctx context.Context, q ListQuery) ([]Testimonial, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Testimonial), args.Error(1)
}

func (m *MockService) Approve(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Testimonial), args.Error(1)
}

func (m *MockService) Reject(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Testimonial), args.Error(1)
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	api.RegisterValidators()

	h := NewHandler(svc)
	r := gin.New()
	r.POST("/testimonials", h.Submit)
	r.GET("/testimonials", h.ListApproved)
	r.GET("/admin/testimonials", h.ListAll)
	r.PUT("/admin/testimonials/:id/approve", h.Approve)
	r.PUT("/admin/testimonials/:id/reject", h.Reject)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Submit(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name: "created",
			body: `{"customer_name":"Siti","review_message":"Fresh and tasty meals","rating":5}`,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, SubmitRequest{CustomerName: "Siti", ReviewMessage: "Fresh and tasty meals", Rating: 5}).
					Return(&Testimonial{ID: uuid.New(), Status: StatusPending}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "rating out of range",
			body:           `{"customer_name":"Siti","review_message":"Fresh and tasty meals","rating":9}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing message",
			body:           `{"customer_name":"Siti","rating":3}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := doJSON(setupRouter(svc), http.MethodPost, "/testimonials", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_ListApproved(t *testing.T) {
	svc := new(MockService)
	svc.On("ListApproved", mock.Anything, 5, 10).Return([]Testimonial{{ID: uuid.New(), Status: StatusApproved}}, nil)

	w := doJSON(setupRouter(svc), http.MethodGet, "/testimonials?limit=5&offset=10", "")

	require.Equal(t, http.StatusOK, w.Code)
	var env api.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Testimonials retrieved successfully.", env.Message)
	assert.Len(t, env.Data, 1)
}

func TestHandler_ListAll_BadStatus(t *testing.T) {
	svc := new(MockService)
	w := doJSON(setupRouter(svc), http.MethodGet, "/admin/testimonials?status=hidden", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
}

func TestHandler_Moderation(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		path           string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name: "approve",
			path: "/admin/testimonials/" + id.String() + "/approve",
			setupMock: func(m *MockService) {
				m.On("Approve", mock.Anything, id).Return(&Testimonial{ID: id, Status: StatusApproved}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "reject missing",
			path: "/admin/testimonials/" + id.String() + "/reject",
			setupMock: func(m *MockService) {
				m.On("Reject", mock.Anything, id).Return(nil, apperr.New(apperr.KindNotFound, "Testimonial not found."))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed id",
			path:           "/admin/testimonials/abc/approve",
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := doJSON(setupRouter(svc), http.MethodPut, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
