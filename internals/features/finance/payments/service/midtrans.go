package service

import (
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	studentModel "feeportal_backend/internals/features/students/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans must be called during bootstrap.
// useProduction=true for Production, false for Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

/* =========================================================
   Generate Snap Token
========================================================= */

// GenerateSnapToken opens a gateway order for the student's outstanding
// balance. grossAmount is whole currency units; the float ledger amount
// never reaches the gateway.
func GenerateSnapToken(orderID string, grossAmount int64, student *studentModel.StudentModel) (*snap.Response, error) {
	if grossAmount <= 0 {
		return nil, errors.New("invalid gross amount")
	}
	if orderID == "" {
		return nil, errors.New("order id is required")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: grossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: student.StudentName,
			Email: student.StudentEmail,
			Phone: student.StudentPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       student.StudentSID,
				Price:    grossAmount,
				Qty:      1,
				Name:     "Outstanding fee balance",
				Category: "FEES",
			},
		},
	}

	res, errSnap := SnapClient.CreateTransaction(req)
	if errSnap != nil {
		return nil, errSnap
	}
	return res, nil
}
