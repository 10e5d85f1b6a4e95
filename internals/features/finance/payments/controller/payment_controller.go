package controller

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	paymentDTO "feeportal_backend/internals/features/finance/payments/dto"
	paymentModel "feeportal_backend/internals/features/finance/payments/model"
	paymentService "feeportal_backend/internals/features/finance/payments/service"
	studentService "feeportal_backend/internals/features/students/service"
	helper "feeportal_backend/internals/helpers"
	authMiddleware "feeportal_backend/internals/middlewares/auth"
	"feeportal_backend/internals/services/email"
)

type PaymentController struct {
	DB *gorm.DB

	// Used to verify webhook signatures; same key the Snap client signs with.
	ServerKey string

	Mailer email.Mailer
}

func NewPaymentController(db *gorm.DB, serverKey string, mailer email.Mailer) *PaymentController {
	return &PaymentController{DB: db, ServerKey: serverKey, Mailer: mailer}
}

/* =======================================================================
   CREATE ORDER (student)
======================================================================= */

// CreateOrder opens a gateway order for the caller's whole outstanding
// balance. The balance is only zeroed later, by a verified callback,
// never here.
func (h *PaymentController) CreateOrder(c *fiber.Ctx) error {
	sess, ok := authMiddleware.SessionFromCtx(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Session missing")
	}

	student, err := studentService.GetStudent(h.DB, sess.SID(), false)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if student.StudentBalance <= 0 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "No outstanding balance to pay")
	}
	if h.ServerKey == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Payment gateway not configured")
	}

	grossAmount := int64(math.Round(student.StudentBalance))
	orderID := fmt.Sprintf("FEE-%s-%s", student.StudentSID, uuid.NewString()[:8])
	provider := paymentModel.PaymentProviderMidtrans

	payment := paymentModel.PaymentModel{
		PaymentID:          uuid.New(),
		PaymentStudentSID:  student.StudentSID,
		PaymentOrderID:     orderID,
		PaymentAmountMinor: studentService.ToMinorUnits(student.StudentBalance),
		PaymentCurrency:    "IDR",
		PaymentStatus:      paymentModel.PaymentStatusInitiated,
		PaymentMethod:      paymentModel.PaymentMethodGateway,
		PaymentProvider:    &provider,
	}
	if err := h.DB.Create(&payment).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	res, err := paymentService.GenerateSnapToken(orderID, grossAmount, &student)
	if err != nil {
		log.Printf("[ERROR] snap order %s: %v", orderID, err)
		_ = h.DB.Model(&payment).Update("payment_status", paymentModel.PaymentStatusFailed).Error
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to create payment order")
	}

	if err := h.DB.Model(&payment).Updates(map[string]any{
		"payment_status": paymentModel.PaymentStatusAwaitingCallback,
		"payment_meta": datatypes.JSONMap{
			"snap_token":   res.Token,
			"redirect_url": res.RedirectURL,
		},
	}).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Payment order created", paymentDTO.CreateOrderResponse{
		OrderID:     orderID,
		SnapToken:   res.Token,
		RedirectURL: res.RedirectURL,
		GrossAmount: grossAmount,
		AmountMinor: payment.PaymentAmountMinor,
		Currency:    payment.PaymentCurrency,
	})
}

/* =======================================================================
   WEBHOOK (public, signature-verified)
======================================================================= */

// Notification handles the gateway callback. The signature check is
// mandatory on every delivery: settlement must never happen without it.
func (h *PaymentController) Notification(c *fiber.Ctx) error {
	var notif paymentDTO.MidtransNotification
	if err := c.BodyParser(&notif); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification payload")
	}

	// Verify signature: SHA512(order_id + status_code + gross_amount + ServerKey)
	want := strings.ToLower(notif.SignatureKey)
	got := sha512sum(notif.OrderID + notif.StatusCode + notif.GrossAmount + h.ServerKey)
	if want == "" || got != want {
		log.Printf("[WARN] webhook signature mismatch for order_id=%s", notif.OrderID)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid signature")
	}

	var rawPayload map[string]any
	_ = json.Unmarshal(c.Body(), &rawPayload)

	var payment paymentModel.PaymentModel
	if err := h.DB.First(&payment, "payment_order_id = ?", notif.OrderID).Error; err != nil {
		// Log the event anyway and answer 200 so the gateway stops
		// retrying a mis-order.
		h.logGatewayEvent(notif, rawPayload, fmt.Sprintf("payment not found for order_id=%s", notif.OrderID))
		return helper.JsonOK(c, "ignored", fiber.Map{"reason": "payment not found"})
	}

	settled := false
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]any{"payment_signature": notif.SignatureKey}

		switch notif.TransactionStatus {
		case "capture":
			if notif.FraudStatus != "accept" {
				updates["payment_status"] = paymentModel.PaymentStatusAwaitingCallback
				break
			}
			fallthrough
		case "settlement":
			updates["payment_status"] = paymentModel.PaymentStatusPaid
			updates["payment_paid_at"] = now
			settled = true
		case "deny", "cancel", "expire", "failure":
			updates["payment_status"] = paymentModel.PaymentStatusFailed
		default:
			// pending etc: keep waiting
			updates["payment_status"] = paymentModel.PaymentStatusAwaitingCallback
		}

		if err := tx.Model(&payment).Updates(updates).Error; err != nil {
			return err
		}
		if settled {
			if _, err := studentService.Settle(tx, payment.PaymentStudentSID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	h.logGatewayEvent(notif, rawPayload, "")

	if settled {
		h.sendReceipt(payment)
		return helper.JsonOK(c, "payment settled", fiber.Map{"order_id": notif.OrderID})
	}
	return helper.JsonOK(c, "payment updated", fiber.Map{
		"order_id": notif.OrderID,
		"status":   notif.TransactionStatus,
	})
}

/* =======================================================================
   HISTORY (student)
======================================================================= */

func (h *PaymentController) MyPayments(c *fiber.Ctx) error {
	sess, ok := authMiddleware.SessionFromCtx(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Session missing")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := h.DB.Model(&paymentModel.PaymentModel{}).
		Where("payment_student_sid = ?", sess.SID())

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var payments []paymentModel.PaymentModel
	if err := q.Order("payment_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&payments).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonList(c, "Payments fetched",
		paymentDTO.ToPaymentResponses(payments),
		helper.BuildPagination(paging, total))
}

/* ======== internals ======== */

func (h *PaymentController) logGatewayEvent(notif paymentDTO.MidtransNotification, payload map[string]any, note string) {
	event := paymentModel.PaymentGatewayEventModel{
		PaymentGatewayEventProvider: paymentModel.PaymentProviderMidtrans,
		PaymentGatewayEventOrderID:  notif.OrderID,
	}
	if notif.SignatureKey != "" {
		sig := notif.SignatureKey
		event.PaymentGatewayEventSignature = &sig
	}
	if payload != nil {
		event.PaymentGatewayEventPayload = datatypes.JSONMap(payload)
	}
	if note != "" {
		event.PaymentGatewayEventNote = &note
	}
	if err := h.DB.Create(&event).Error; err != nil {
		log.Printf("[ERROR] logging gateway event for order_id=%s: %v", notif.OrderID, err)
	}
}

func (h *PaymentController) sendReceipt(payment paymentModel.PaymentModel) {
	student, err := studentService.GetStudent(h.DB, payment.PaymentStudentSID, false)
	if err != nil {
		return
	}
	h.Mailer.Send(email.Message{
		ToName:  student.StudentName,
		ToAddr:  student.StudentEmail,
		Subject: "Fee payment received",
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour online payment (order %s) has been received and your fee balance is now settled.\n",
			student.StudentName, payment.PaymentOrderID),
	})
}

func sha512sum(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}
