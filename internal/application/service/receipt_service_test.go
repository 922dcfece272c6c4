package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/freightbooks/freightbooks-api/internal/domain/entity"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/internal/domain/receipt"
	"github.com/freightbooks/freightbooks-api/internal/domain/repository"
	"github.com/freightbooks/freightbooks-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReceiptRepo is an in-memory ReceiptDocumentRepository
type fakeReceiptRepo struct {
	docs map[uuid.UUID]*entity.ReceiptDocument
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{docs: make(map[uuid.UUID]*entity.ReceiptDocument)}
}

func (f *fakeReceiptRepo) Create(_ context.Context, doc *entity.ReceiptDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	stored := *doc
	f.docs[doc.ID] = &stored
	return nil
}

func (f *fakeReceiptRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ReceiptDocument, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeReceiptRepo) UpdateVersioned(_ context.Context, doc *entity.ReceiptDocument, expectedVersion int) error {
	stored, ok := f.docs[doc.ID]
	if !ok || stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	doc.Version = expectedVersion + 1
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeReceiptRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeReceiptRepo) ListByPro(_ context.Context, proNumber string) ([]entity.ReceiptDocument, error) {
	var out []entity.ReceiptDocument
	for _, doc := range f.docs {
		if doc.ProNumber == proNumber {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (f *fakeReceiptRepo) List(_ context.Context, _ *repository.ReceiptFilterParams) ([]entity.ReceiptDocument, int64, error) {
	var out []entity.ReceiptDocument
	for _, doc := range f.docs {
		out = append(out, *doc)
	}
	return out, int64(len(out)), nil
}

// fakeShipmentRepo is an in-memory ShipmentRepository
type fakeShipmentRepo struct {
	byPro map[string]*entity.Shipment
}

func newFakeShipmentRepo(pros ...string) *fakeShipmentRepo {
	f := &fakeShipmentRepo{byPro: make(map[string]*entity.Shipment)}
	for _, pro := range pros {
		f.byPro[pro] = &entity.Shipment{ID: uuid.New(), ProNumber: pro, Consignee: "Acme Trading"}
	}
	return f
}

func (f *fakeShipmentRepo) Create(_ context.Context, s *entity.Shipment) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.byPro[s.ProNumber] = s
	return nil
}

func (f *fakeShipmentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Shipment, error) {
	for _, s := range f.byPro {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeShipmentRepo) GetByProNumber(_ context.Context, proNumber string) (*entity.Shipment, error) {
	return f.byPro[proNumber], nil
}

func (f *fakeShipmentRepo) Update(_ context.Context, s *entity.Shipment) error {
	f.byPro[s.ProNumber] = s
	return nil
}

func (f *fakeShipmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for pro, s := range f.byPro {
		if s.ID == id {
			delete(f.byPro, pro)
		}
	}
	return nil
}

func (f *fakeShipmentRepo) List(_ context.Context, _ *repository.ShipmentFilterParams) ([]entity.Shipment, int64, error) {
	return nil, 0, nil
}

// fakeAuditRepo records audit writes, optionally failing every Create
type fakeAuditRepo struct {
	entries []entity.AuditLog
	fail    bool
}

func (f *fakeAuditRepo) Create(_ context.Context, log *entity.AuditLog) error {
	if f.fail {
		return errors.New("audit store unavailable")
	}
	f.entries = append(f.entries, *log)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _ *repository.AuditFilterParams) ([]entity.AuditLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func invoiceGroups() []receipt.Group {
	g := receipt.NewGroup("Charges")
	g.Rows = append(g.Rows,
		receipt.NewRow("Trucking", d("1000")),
		receipt.NewWithholdingRow("Brokerage fee", d("500"), receipt.WithholdingClassBrokerage),
	)
	return []receipt.Group{g}
}

func newTestService(shipmentRepo *fakeShipmentRepo, auditRepo *fakeAuditRepo) (*ReceiptService, *fakeReceiptRepo) {
	receiptRepo := newFakeReceiptRepo()
	svc := NewReceiptService(receiptRepo, shipmentRepo, NewAuditService(auditRepo))
	return svc, receiptRepo
}

func testActor() Actor {
	return Actor{ID: uuid.New(), Email: "encoder@freightbooks.test"}
}

func TestCreateReceiptComputesSnapshot(t *testing.T) {
	svc, _ := newTestService(newFakeShipmentRepo("PRO-1001"), &fakeAuditRepo{})

	doc, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       testActor(),
		ProNumber:   "PRO-1001",
		ReceiptType: enum.ReceiptTypeServiceInvoice,
		Groups:      invoiceGroups(),
		Tax:         receipt.TaxOptions{WithholdingEnabled: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Version)
	assert.True(t, doc.GrandTotal.Equal(d("1500")))
	assert.True(t, doc.TotalAmountDue.Equal(d("1580")))

	comp, err := doc.DecodeTaxComputation()
	require.NoError(t, err)
	assert.True(t, comp.VATValue.Equal(d("180")))
	assert.True(t, comp.WithholdingTax.Equal(d("100")))
}

func TestCreateReceiptStatementIgnoresTaxOptions(t *testing.T) {
	svc, _ := newTestService(newFakeShipmentRepo("PRO-1001"), &fakeAuditRepo{})

	g := receipt.NewGroup("Charges")
	g.Rows = append(g.Rows, receipt.NewRow("Trucking", d("1400")))

	doc, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       testActor(),
		ProNumber:   "PRO-1001",
		ReceiptType: enum.ReceiptTypeStatementOfAccounts,
		Groups:      []receipt.Group{g},
		Tax:         receipt.TaxOptions{WithholdingEnabled: true},
	})
	require.NoError(t, err)

	assert.True(t, doc.TotalAmountDue.Equal(d("1400")))

	comp, err := doc.DecodeStatementComputation()
	require.NoError(t, err)
	assert.True(t, comp.GrandTotal.Equal(d("1400")))
}

func TestCreateReceiptRejectsNonPositiveTotal(t *testing.T) {
	svc, _ := newTestService(newFakeShipmentRepo("PRO-1001"), &fakeAuditRepo{})

	g := receipt.NewGroup("Charges")
	g.Rows = append(g.Rows, receipt.NewRow("Refund", d("-100")))

	_, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       testActor(),
		ProNumber:   "PRO-1001",
		ReceiptType: enum.ReceiptTypeServiceInvoice,
		Groups:      []receipt.Group{g},
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
}

func TestCreateReceiptUnknownPro(t *testing.T) {
	svc, _ := newTestService(newFakeShipmentRepo(), &fakeAuditRepo{})

	_, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       testActor(),
		ProNumber:   "PRO-MISSING",
		ReceiptType: enum.ReceiptTypeServiceInvoice,
		Groups:      invoiceGroups(),
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestCreateReceiptInvalidType(t *testing.T) {
	svc, _ := newTestService(newFakeShipmentRepo("PRO-1001"), &fakeAuditRepo{})

	_, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       testActor(),
		ProNumber:   "PRO-1001",
		ReceiptType: enum.ReceiptType("delivery_note"),
		Groups:      invoiceGroups(),
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestUpdateReceiptBumpsVersion(t *testing.T) {
	svc, _ := newTestService(newFakeShipmentRepo("PRO-1001"), &fakeAuditRepo{})
	actor := testActor()

	doc, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       actor,
		ProNumber:   "PRO-1001",
		ReceiptType: enum.ReceiptTypeServiceInvoice,
		Groups:      invoiceGroups(),
		Tax:         receipt.TaxOptions{WithholdingEnabled: true},
	})
	require.NoError(t, err)

	g := receipt.NewGroup("Charges")
	g.Rows = append(g.Rows, receipt.NewRow("Trucking", d("2000")))

	updated, err := svc.UpdateReceipt(context.Background(), &UpdateReceiptInput{
		Actor:   actor,
		ID:      doc.ID,
		Groups:  []receipt.Group{g},
		Version: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Version)
	assert.True(t, updated.GrandTotal.Equal(d("2000")))
	// Type stays what it was at creation
	assert.Equal(t, enum.ReceiptTypeServiceInvoice, updated.ReceiptType)
}

func TestUpdateReceiptStaleVersionConflicts(t *testing.T) {
	svc, _ := newTestService(newFakeShipmentRepo("PRO-1001"), &fakeAuditRepo{})
	actor := testActor()

	doc, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       actor,
		ProNumber:   "PRO-1001",
		ReceiptType: enum.ReceiptTypeServiceInvoice,
		Groups:      invoiceGroups(),
	})
	require.NoError(t, err)

	// First writer wins
	_, err = svc.UpdateReceipt(context.Background(), &UpdateReceiptInput{
		Actor:   actor,
		ID:      doc.ID,
		Groups:  invoiceGroups(),
		Version: 1,
	})
	require.NoError(t, err)

	// Second writer still holds version 1
	_, err = svc.UpdateReceipt(context.Background(), &UpdateReceiptInput{
		Actor:   actor,
		ID:      doc.ID,
		Groups:  invoiceGroups(),
		Version: 1,
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestDeleteReceiptIsIdempotent(t *testing.T) {
	svc, _ := newTestService(newFakeShipmentRepo("PRO-1001"), &fakeAuditRepo{})
	actor := testActor()

	doc, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       actor,
		ProNumber:   "PRO-1001",
		ReceiptType: enum.ReceiptTypeServiceInvoice,
		Groups:      invoiceGroups(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReceipt(context.Background(), actor, doc.ID))
	// Second delete of the same id is not an error
	require.NoError(t, svc.DeleteReceipt(context.Background(), actor, doc.ID))

	_, err = svc.GetReceipt(context.Background(), doc.ID)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestAuditFailureDoesNotFailSave(t *testing.T) {
	svc, repo := newTestService(newFakeShipmentRepo("PRO-1001"), &fakeAuditRepo{fail: true})

	doc, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       testActor(),
		ProNumber:   "PRO-1001",
		ReceiptType: enum.ReceiptTypeServiceInvoice,
		Groups:      invoiceGroups(),
	})
	require.NoError(t, err)
	assert.NotNil(t, repo.docs[doc.ID])
}

func TestAuditEntriesRecordMutations(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	svc, _ := newTestService(newFakeShipmentRepo("PRO-1001"), auditRepo)
	actor := testActor()

	doc, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		Actor:       actor,
		ProNumber:   "PRO-1001",
		ReceiptType: enum.ReceiptTypeServiceInvoice,
		Groups:      invoiceGroups(),
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteReceipt(context.Background(), actor, doc.ID))

	require.Len(t, auditRepo.entries, 2)
	assert.Equal(t, enum.AuditActionCreate, auditRepo.entries[0].Action)
	assert.Equal(t, enum.AuditActionDelete, auditRepo.entries[1].Action)
	assert.Equal(t, "PRO-1001", auditRepo.entries[0].ProNumber)
	assert.Equal(t, actor.Email, auditRepo.entries[0].ActorEmail)
}
