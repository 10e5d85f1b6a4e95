package controller_test

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"feeportal_backend/internals/databases/testdb"
	paymentController "feeportal_backend/internals/features/finance/payments/controller"
	paymentModel "feeportal_backend/internals/features/finance/payments/model"
	studentDTO "feeportal_backend/internals/features/students/dto"
	studentService "feeportal_backend/internals/features/students/service"
	authService "feeportal_backend/internals/features/users/auth/service"
	authMiddleware "feeportal_backend/internals/middlewares/auth"
	"feeportal_backend/internals/services/email"
)

const testServerKey = "SB-Mid-server-testkey"

func newPaymentApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := testdb.Open(t)
	h := paymentController.NewPaymentController(db, testServerKey, email.NewConsoleMailer())

	app := fiber.New()
	app.Post("/api/payments/notification", h.Notification)

	student := app.Group("/api/s", authMiddleware.StudentOnly(db))
	student.Get("/me/payments/", h.MyPayments)
	student.Post("/me/pay", h.CreateOrder)
	return app, db
}

func seedStudent(t *testing.T, db *gorm.DB, sid string, total, paid float64) {
	t.Helper()
	_, _, err := studentService.UpsertStudent(db, studentDTO.UpsertStudentRequest{
		SID:      sid,
		Name:     "John Doe",
		Email:    "john@example.com",
		Total:    total,
		Paid:     paid,
		Password: "secret123",
	})
	require.NoError(t, err)
}

func seedAwaitingPayment(t *testing.T, db *gorm.DB, sid, orderID string, amount float64) {
	t.Helper()
	provider := paymentModel.PaymentProviderMidtrans
	p := paymentModel.PaymentModel{
		PaymentID:          uuid.New(),
		PaymentStudentSID:  sid,
		PaymentOrderID:     orderID,
		PaymentAmountMinor: studentService.ToMinorUnits(amount),
		PaymentCurrency:    "IDR",
		PaymentStatus:      paymentModel.PaymentStatusAwaitingCallback,
		PaymentMethod:      paymentModel.PaymentMethodGateway,
		PaymentProvider:    &provider,
	}
	require.NoError(t, db.Create(&p).Error)
}

func signature(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))
	return hex.EncodeToString(sum[:])
}

func notify(t *testing.T, app *fiber.App, payload fiber.Map) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, "/api/payments/notification", bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestNotificationSettlement(t *testing.T) {
	app, db := newPaymentApp(t)

	seedStudent(t, db, "S1", 1000, 200)
	_, err := studentService.RequestManualPayment(db, "S1")
	require.NoError(t, err)
	seedAwaitingPayment(t, db, "S1", "FEE-S1-abcd1234", 800)

	resp := notify(t, app, fiber.Map{
		"order_id":           "FEE-S1-abcd1234",
		"status_code":        "200",
		"gross_amount":       "800.00",
		"transaction_status": "settlement",
		"signature_key":      signature("FEE-S1-abcd1234", "200", "800.00"),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "payment settled", readEnvelope(t, resp)["message"])

	st, err := studentService.GetStudent(db, "S1", false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, st.StudentBalance)
	assert.False(t, st.StudentAdminRequest, "settlement also answers the open request")

	var payment paymentModel.PaymentModel
	require.NoError(t, db.First(&payment, "payment_order_id = ?", "FEE-S1-abcd1234").Error)
	assert.Equal(t, paymentModel.PaymentStatusPaid, payment.PaymentStatus)
	assert.NotNil(t, payment.PaymentPaidAt)

	var events int64
	require.NoError(t, db.Model(&paymentModel.PaymentGatewayEventModel{}).Count(&events).Error)
	assert.EqualValues(t, 1, events)
}

func TestNotificationRejectsTamperedSignature(t *testing.T) {
	app, db := newPaymentApp(t)

	seedStudent(t, db, "S1", 1000, 200)
	seedAwaitingPayment(t, db, "S1", "FEE-S1-abcd1234", 800)

	for name, sig := range map[string]string{
		"wrong amount signed": signature("FEE-S1-abcd1234", "200", "1.00"),
		"missing":             "",
		"garbage":             "deadbeef",
	} {
		t.Run(name, func(t *testing.T) {
			resp := notify(t, app, fiber.Map{
				"order_id":           "FEE-S1-abcd1234",
				"status_code":        "200",
				"gross_amount":       "800.00",
				"transaction_status": "settlement",
				"signature_key":      sig,
			})
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}

	// nothing settled, nothing recorded
	st, err := studentService.GetStudent(db, "S1", false)
	require.NoError(t, err)
	assert.Equal(t, 800.0, st.StudentBalance)

	var payment paymentModel.PaymentModel
	require.NoError(t, db.First(&payment, "payment_order_id = ?", "FEE-S1-abcd1234").Error)
	assert.Equal(t, paymentModel.PaymentStatusAwaitingCallback, payment.PaymentStatus)

	var events int64
	require.NoError(t, db.Model(&paymentModel.PaymentGatewayEventModel{}).Count(&events).Error)
	assert.EqualValues(t, 0, events, "unverified deliveries are not trusted enough to log")
}

func TestNotificationCaptureFraudHandling(t *testing.T) {
	app, db := newPaymentApp(t)

	seedStudent(t, db, "S1", 1000, 0)
	seedAwaitingPayment(t, db, "S1", "FEE-S1-cap00001", 1000)

	t.Run("capture under fraud challenge stays pending", func(t *testing.T) {
		resp := notify(t, app, fiber.Map{
			"order_id":           "FEE-S1-cap00001",
			"status_code":        "200",
			"gross_amount":       "1000.00",
			"transaction_status": "capture",
			"fraud_status":       "challenge",
			"signature_key":      signature("FEE-S1-cap00001", "200", "1000.00"),
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		st, err := studentService.GetStudent(db, "S1", false)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, st.StudentBalance)
	})

	t.Run("accepted capture settles", func(t *testing.T) {
		resp := notify(t, app, fiber.Map{
			"order_id":           "FEE-S1-cap00001",
			"status_code":        "200",
			"gross_amount":       "1000.00",
			"transaction_status": "capture",
			"fraud_status":       "accept",
			"signature_key":      signature("FEE-S1-cap00001", "200", "1000.00"),
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		st, err := studentService.GetStudent(db, "S1", false)
		require.NoError(t, err)
		assert.Equal(t, 0.0, st.StudentBalance)
	})
}

func TestNotificationFailureStatuses(t *testing.T) {
	app, db := newPaymentApp(t)

	seedStudent(t, db, "S1", 1000, 200)
	seedAwaitingPayment(t, db, "S1", "FEE-S1-exp00001", 800)

	resp := notify(t, app, fiber.Map{
		"order_id":           "FEE-S1-exp00001",
		"status_code":        "202",
		"gross_amount":       "800.00",
		"transaction_status": "expire",
		"signature_key":      signature("FEE-S1-exp00001", "202", "800.00"),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payment paymentModel.PaymentModel
	require.NoError(t, db.First(&payment, "payment_order_id = ?", "FEE-S1-exp00001").Error)
	assert.Equal(t, paymentModel.PaymentStatusFailed, payment.PaymentStatus)

	st, err := studentService.GetStudent(db, "S1", false)
	require.NoError(t, err)
	assert.Equal(t, 800.0, st.StudentBalance, "a failed order changes nothing on the ledger")
}

func TestNotificationUnknownOrderIgnored(t *testing.T) {
	app, db := newPaymentApp(t)

	resp := notify(t, app, fiber.Map{
		"order_id":           "FEE-ghost-00000000",
		"status_code":        "200",
		"gross_amount":       "800.00",
		"transaction_status": "settlement",
		"signature_key":      signature("FEE-ghost-00000000", "200", "800.00"),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "answer 200 so the gateway stops retrying")
	assert.Equal(t, "ignored", readEnvelope(t, resp)["message"])

	var events int64
	require.NoError(t, db.Model(&paymentModel.PaymentGatewayEventModel{}).Count(&events).Error)
	assert.EqualValues(t, 1, events, "mis-orders still leave an audit row")
}

func TestCreateOrderGuards(t *testing.T) {
	app, db := newPaymentApp(t)

	t.Run("settled student has nothing to pay", func(t *testing.T) {
		seedStudent(t, db, "S0", 1000, 1000)
		sess, err := authService.CreateStudentSession(db, "S0")
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/s/me/pay", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+sess.SessionToken.String())
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("unconfigured gateway is a 503 and writes nothing", func(t *testing.T) {
		h := paymentController.NewPaymentController(db, "", email.NewConsoleMailer())
		bare := fiber.New()
		bare.Post("/api/s/me/pay", authMiddleware.StudentOnly(db), h.CreateOrder)

		seedStudent(t, db, "S1", 1000, 0)
		sess, err := authService.CreateStudentSession(db, "S1")
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/s/me/pay", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+sess.SessionToken.String())
		resp, err := bare.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&paymentModel.PaymentModel{}).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})
}

func TestMyPayments(t *testing.T) {
	app, db := newPaymentApp(t)

	seedStudent(t, db, "S1", 1000, 0)
	seedStudent(t, db, "S2", 500, 0)
	_, err := studentService.PayFee(db, "S1", 400)
	require.NoError(t, err)
	_, err = studentService.PayFee(db, "S2", 500)
	require.NoError(t, err)

	sess, err := authService.CreateStudentSession(db, "S1")
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/api/s/me/payments/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+sess.SessionToken.String())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := readEnvelope(t, resp)
	data := body["data"].([]any)
	require.Len(t, data, 1, "only the caller's own payments")
	first := data[0].(map[string]any)
	assert.Contains(t, first["order_id"], "MAN-S1-")
	assert.Equal(t, "manual", first["method"])
	assert.Equal(t, "paid", first["status"])
	assert.NotNil(t, body["pagination"])
}
