package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelhouse/partshop/models"
)

// --- Mock Repository ---

type MockUserRepo struct {
	Users     []models.User
	ListErr   error
	CreateErr error

	lastCalledSearch string
	LastSaved        *models.User
}

func (m *MockUserRepo) ListUsers(ctx context.Context, search string) ([]models.User, error) {
	m.lastCalledSearch = search
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Users, nil
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	m.LastSaved = user
	if m.CreateErr != nil {
		return m.CreateErr
	}
	user.ID = 12
	return nil
}

func TestHandleList(t *testing.T) {
	testCases := []struct {
		name               string
		url                string
		mockRepoSetup      func() *MockUserRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCalls     func(t *testing.T, repo *MockUserRepo)
	}{
		{
			name: "Search is passed through",
			url:  "/api/v1/users?search=koval",
			mockRepoSetup: func() *MockUserRepo {
				return &MockUserRepo{Users: []models.User{
					{ID: 1, FirstName: "Olena", LastName: "Koval", Email: "olena@example.com", Password: "$2a$10$hash"},
				}}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotContains(t, rec.Body.String(), "password")
				var resp []UserResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				require.Len(t, resp, 1)
				assert.Equal(t, "olena@example.com", resp[0].Email)
			},
			checkRepoCalls: func(t *testing.T, repo *MockUserRepo) {
				assert.Equal(t, "koval", repo.lastCalledSearch)
			},
		},
		{
			name: "Repository error",
			url:  "/api/v1/users",
			mockRepoSetup: func() *MockUserRepo {
				return &MockUserRepo{ListErr: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewUserHandler(mockRepo)
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleList(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, mockRepo)
			}
		})
	}
}

func TestHandleCreate(t *testing.T) {
	validBody := `{"first_name":"Olena","last_name":"Koval","email":"olena@example.com","password":"correct-horse","city":"Lviv"}`

	testCases := []struct {
		name               string
		requestBody        string
		mockRepoSetup      func() *MockUserRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockUserRepo)
	}{
		{
			name:        "Success",
			requestBody: validBody,
			mockRepoSetup: func() *MockUserRepo {
				return &MockUserRepo{}
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotContains(t, rec.Body.String(), "correct-horse")
				var resp UserResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, uint(12), resp.ID)
				assert.Equal(t, "Lviv", resp.City)
			},
			checkRepoCall: func(t *testing.T, repo *MockUserRepo) {
				require.NotNil(t, repo.LastSaved)
				assert.Equal(t, "olena@example.com", repo.LastSaved.Email)
			},
		},
		{
			name:        "Invalid email",
			requestBody: `{"first_name":"Olena","last_name":"Koval","email":"not-an-email","password":"correct-horse"}`,
			mockRepoSetup: func() *MockUserRepo {
				return &MockUserRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp struct {
					Fields map[string]string `json:"fields"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "email must be a valid email address", resp.Fields["email"])
			},
			checkRepoCall: func(t *testing.T, repo *MockUserRepo) {
				assert.Nil(t, repo.LastSaved)
			},
		},
		{
			name:        "Duplicate email",
			requestBody: validBody,
			mockRepoSetup: func() *MockUserRepo {
				return &MockUserRepo{CreateErr: models.ErrEmailExists}
			},
			expectedStatusCode: http.StatusConflict,
		},
		{
			name:        "Repository error",
			requestBody: validBody,
			mockRepoSetup: func() *MockUserRepo {
				return &MockUserRepo{CreateErr: errors.New("insert failed")}
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewUserHandler(mockRepo)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}
