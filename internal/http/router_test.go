package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	intconfig "travelnest/internal/config"
	"travelnest/internal/domain/models"
	"travelnest/internal/services"
	"travelnest/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingCols = []string{"id", "booking_number", "name", "phone", "pickup", "drop", "trip_type", "car", "price", "travel_date", "travel_time", "status", "created_at"}

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, intconfig.Env) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := intconfig.Env{
		BaseURL:             "http://127.0.0.1:8000",
		InvoiceDir:          t.TempDir(),
		JWTSecret:           "test-secret",
		JWTTTL:              time.Hour,
		BookingRatePerMin:   100,
		WhatsAppCountryCode: "91",
		Company:             intconfig.Company{Name: "Travel Nest Cabs"},
	}
	return NewRouter(env, db), mock, env
}

func adminToken(t *testing.T, env intconfig.Env) string {
	t.Helper()
	token, _, err := services.NewTokenService(env.JWTSecret, env.JWTTTL).Generate(models.Admin{ID: 1, Username: "admin"})
	require.NoError(t, err)
	return token
}

func doJSON(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRootAndNoRoute(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Backend running"}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBookingEndpoint(t *testing.T) {
	prev := utils.NowUTC
	now := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	utils.NowUTC = func() time.Time { return now }
	t.Cleanup(func() { utils.NowUTC = prev })

	r, mock, _ := newTestRouter(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO booking_sequences").WithArgs("20260115").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := doJSON(r, http.MethodPost, "/api/bookings", map[string]any{
		"name": "Asha", "phone": "9876543210", "pickup": "Airport", "drop": "City Centre",
		"trip_type": "one-way", "car": "Sedan", "price": 1000, "travel_date": "2026-01-20", "travel_time": "10:00",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Message       string `json:"message"`
		BookingID     int64  `json:"booking_id"`
		BookingNumber string `json:"booking_number"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.BookingID)
	assert.Equal(t, "TNC-20260115-0001", body.BookingNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	r, mock, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/bookings", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/bookings", map[string]any{"name": "Asha"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRequiresPrice(t *testing.T) {
	r, mock, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/bookings", map[string]any{
		"name": "Asha", "phone": "9876543210", "pickup": "Airport", "drop": "City Centre",
		"trip_type": "one-way", "car": "Sedan", "travel_date": "2026-01-20", "travel_time": "10:00",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price: required")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/bookings"},
		{http.MethodPut, "/api/admin/bookings/1"},
		{http.MethodPut, "/api/admin/invoices/1/status"},
		{http.MethodPost, "/api/invoice/generate/1"},
		{http.MethodPost, "/api/invoice/resend-whatsapp/1"},
	} {
		w := doJSON(r, tc.method, tc.path, map[string]string{"status": "PAID"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestListBookingsEndpoint(t *testing.T) {
	r, mock, env := newTestRouter(t)
	created := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("LEFT JOIN invoices").WillReturnRows(sqlmock.NewRows(append(bookingCols, "invoice_exists")).
		AddRow(1, "TNC-20260115-0001", "Asha", "9876543210", "Airport", "City Centre", "one-way", "Sedan", 1000.0, "2026-01-20", "10:00", "INVOICED", created, true))

	w := doJSON(r, http.MethodGet, "/api/admin/bookings", nil, adminToken(t, env))
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "TNC-20260115-0001", items[0]["booking_number"])
	assert.Equal(t, true, items[0]["invoice_exists"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingStatusEndpoint(t *testing.T) {
	r, mock, env := newTestRouter(t)
	created := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("FROM bookings b WHERE b.id = ?").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(1, "TNC-20260115-0001", "Asha", "9876543210", "Airport", "City Centre", "one-way", "Sedan", 1000.0, "2026-01-20", "10:00", "PENDING", created))
	mock.ExpectExec("UPDATE bookings SET status").WithArgs("CONFIRMED", int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(r, http.MethodPut, "/api/admin/bookings/1", map[string]string{"status": "CONFIRMED"}, adminToken(t, env))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"whatsapp_link":null`)
	assert.Contains(t, w.Body.String(), `"status":"CONFIRMED"`)

	w = doJSON(r, http.MethodPut, "/api/admin/bookings/abc", map[string]string{"status": "CONFIRMED"}, adminToken(t, env))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/admin/bookings/1", map[string]string{"status": "INVOICED"}, adminToken(t, env))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInvoiceStatusPaidIsLocked(t *testing.T) {
	r, mock, env := newTestRouter(t)
	created := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("FROM invoices WHERE id = ?").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "invoice_no", "base_amount", "gst_amount", "total_amount", "pdf_path", "status", "created_at"}).
			AddRow(9, 1, "TNC-INV-TNC-20260115-0001", 1000.0, 50.0, 1050.0, "invoices/TNC-INV-TNC-20260115-0001.pdf", "PAID", created))

	w := doJSON(r, http.MethodPut, "/api/admin/invoices/9/status", map[string]string{"status": "SENT"}, adminToken(t, env))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")
	require.NoError(t, mock.ExpectationsWereMet())
}
