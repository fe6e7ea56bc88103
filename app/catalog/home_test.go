package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelhouse/partshop/models"
)

func TestHomeHandler_HandleGet(t *testing.T) {
	tires := make([]models.Tire, 8)
	for i := range tires {
		tires[i] = newTestTire(uint(i+1), "Nokian", fmt.Sprintf("R%d", i+1), models.SeasonWinter, 1980)
	}

	testCases := []struct {
		name               string
		disks              *MockProductRepo[models.Disk]
		tires              *MockProductRepo[models.Tire]
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Latest six of each",
			disks:              &MockProductRepo[models.Disk]{SourceProducts: aezDisks(3)},
			tires:              &MockProductRepo[models.Tire]{SourceProducts: tires},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp HomeResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Len(t, resp.Disks, 3)
				assert.Len(t, resp.Tires, HomeLimit)
			},
		},
		{
			name:               "Tire repository error",
			disks:              &MockProductRepo[models.Disk]{},
			tires:              &MockProductRepo[models.Tire]{Err: errors.New("db down")},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Failed to fetch products", decodeError(t, rec))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			handler := NewHomeHandler(tc.disks, tc.tires, testMoney)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/home", nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGet(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestMoney_Format(t *testing.T) {
	money := NewMoney("UAH")

	assert.Equal(t, "UAH 1,500.00", money.Format(decimal.RequireFromString("1500")))
	assert.Equal(t, "UAH 0.00", money.Format(decimal.Zero))
	assert.Equal(t, "UAH 1,234,567.89", money.Format(decimal.RequireFromString("1234567.891")))
}
