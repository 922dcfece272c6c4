package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShipmentTestService(shipmentRepo *fakeShipmentRepo) (*ShipmentService, *fakeReceiptRepo) {
	receiptRepo := newFakeReceiptRepo()
	svc := NewShipmentService(shipmentRepo, receiptRepo, NewAuditService(&fakeAuditRepo{}))
	return svc, receiptRepo
}

func TestCreateShipmentDuplicatePro(t *testing.T) {
	svc, _ := newShipmentTestService(newFakeShipmentRepo("PRO-1001"))

	_, err := svc.CreateShipment(context.Background(), &CreateShipmentInput{
		Actor:     testActor(),
		ProNumber: "PRO-1001",
		Consignee: "Acme Trading",
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestDeleteShipmentBlockedByReceipts(t *testing.T) {
	shipmentRepo := newFakeShipmentRepo("PRO-1001")
	svc, receiptRepo := newShipmentTestService(shipmentRepo)

	shipment := shipmentRepo.byPro["PRO-1001"]

	receiptSvc := NewReceiptService(receiptRepo, shipmentRepo, NewAuditService(&fakeAuditRepo{}))
	_, err := receiptSvc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       testActor(),
		ProNumber:   "PRO-1001",
		ReceiptType: enum.ReceiptTypeServiceInvoice,
		Groups:      invoiceGroups(),
	})
	require.NoError(t, err)

	err = svc.DeleteShipment(context.Background(), testActor(), shipment.ID)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestUpdateShipmentPartialFields(t *testing.T) {
	shipmentRepo := newFakeShipmentRepo("PRO-1001")
	svc, _ := newShipmentTestService(shipmentRepo)

	shipment := shipmentRepo.byPro["PRO-1001"]
	status := enum.ShipmentStatusDelivered

	updated, err := svc.UpdateShipment(context.Background(), &UpdateShipmentInput{
		Actor:  testActor(),
		ID:     shipment.ID,
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ShipmentStatusDelivered, updated.Status)
	// Untouched fields survive
	assert.Equal(t, "Acme Trading", updated.Consignee)
	assert.Equal(t, "PRO-1001", updated.ProNumber)
}
