package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentStatusInitiated        = "initiated"
	PaymentStatusAwaitingCallback = "awaiting_callback"
	PaymentStatusPaid             = "paid"
	PaymentStatusFailed           = "failed"
)

const (
	PaymentMethodGateway = "gateway"
	PaymentMethodManual  = "manual"
)

const PaymentProviderMidtrans = "midtrans"

/* ===================== Model ===================== */

// PaymentModel records every settlement attempt against a student's
// balance: gateway orders and manual admin payments alike.
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	PaymentStudentSID string `gorm:"column:payment_student_sid;size:64;not null;index" json:"payment_student_sid"`

	// OrderID handed to the gateway; also set for manual payments so
	// every settlement has one reference.
	PaymentOrderID string `gorm:"column:payment_order_id;size:64;uniqueIndex;not null" json:"payment_order_id"`

	// Integer minor units only; no float ever crosses the gateway boundary.
	PaymentAmountMinor int64  `gorm:"column:payment_amount_minor;not null" json:"payment_amount_minor"`
	PaymentCurrency    string `gorm:"column:payment_currency;type:varchar(8);not null;default:IDR" json:"payment_currency"`

	PaymentStatus string `gorm:"column:payment_status;type:varchar(20);not null;default:initiated" json:"payment_status"`
	PaymentMethod string `gorm:"column:payment_method;type:varchar(20);not null;default:gateway" json:"payment_method"`

	PaymentProvider  *string    `gorm:"column:payment_provider;type:varchar(20)" json:"payment_provider,omitempty"`
	PaymentSignature *string    `gorm:"column:payment_signature" json:"payment_signature,omitempty"`
	PaymentPaidAt    *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentMeta datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	CreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (p *PaymentModel) IsPaid() bool { return p.PaymentStatus == PaymentStatusPaid }

func (p *PaymentModel) IsOpen() bool {
	switch p.PaymentStatus {
	case PaymentStatusInitiated, PaymentStatusAwaitingCallback:
		return true
	default:
		return false
	}
}
