package model

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentGatewayEventModel is the raw audit of every webhook delivery,
// kept regardless of whether it matched a payment.
type PaymentGatewayEventModel struct {
	PaymentGatewayEventID        uint    `gorm:"column:payment_gateway_event_id;primaryKey;autoIncrement" json:"payment_gateway_event_id"`
	PaymentGatewayEventProvider  string  `gorm:"column:payment_gateway_event_provider;type:varchar(20);not null" json:"payment_gateway_event_provider"`
	PaymentGatewayEventOrderID   string  `gorm:"column:payment_gateway_event_order_id;size:64;index" json:"payment_gateway_event_order_id"`
	PaymentGatewayEventSignature *string `gorm:"column:payment_gateway_event_signature" json:"payment_gateway_event_signature,omitempty"`

	PaymentGatewayEventPayload datatypes.JSONMap `gorm:"column:payment_gateway_event_payload;type:jsonb" json:"payment_gateway_event_payload,omitempty"`
	PaymentGatewayEventNote    *string           `gorm:"column:payment_gateway_event_note" json:"payment_gateway_event_note,omitempty"`

	CreatedAt time.Time `gorm:"column:payment_gateway_event_created_at;autoCreateTime" json:"payment_gateway_event_created_at"`
}

func (PaymentGatewayEventModel) TableName() string { return "payment_gateway_events" }
