package sale

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/domain/project"
	"github.com/erp/projectlink/internal/domain/sale"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/erp/projectlink/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type advanceFixture struct {
	orders   *MockSaleOrderRepository
	projects *MockProjectRepository
	moves    *MockMoveRepository
	tx       *passThroughScope
	svc      *AdvancePaymentService
}

func newAdvanceFixture(metrics *telemetry.LinkMetrics) *advanceFixture {
	f := &advanceFixture{
		orders:   new(MockSaleOrderRepository),
		projects: new(MockProjectRepository),
		moves:    new(MockMoveRepository),
	}
	f.tx = &passThroughScope{moves: f.moves}
	f.svc = NewAdvancePaymentService(f.orders, f.projects, f.tx, metrics)
	return f
}

func TestAdvancePaymentService_FixedAmount(t *testing.T) {
	f := newAdvanceFixture(nil)
	p, _ := project.NewProject("Bridge", project.VisibilityEmployees)
	account := uuid.New()
	p.AttachAnalyticAccount(account)
	order := newConfirmedOrder("S00001", &p.ID, 100)

	f.orders.On("FindByIDs", mock.Anything, []uuid.UUID{order.ID}).Return([]sale.Order{order}, nil)
	f.projects.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.moves.On("GenerateName", mock.Anything, accounting.MoveTypeOutInvoice).Return("INV/00001", nil)

	var saved *accounting.Move
	f.moves.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Move")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*accounting.Move) }).
		Return(nil)

	resp, err := f.svc.CreateInvoices(context.Background(), AdvancePaymentRequest{
		OrderIDs: []uuid.UUID{order.ID, order.ID},
		Method:   "fixed",
		Amount:   decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.Len(t, resp.Invoices, 1)
	inv := resp.Invoices[0]
	assert.Equal(t, "INV/00001", inv.Name)
	assert.Equal(t, order.ID, inv.SaleOrderID)
	assert.Equal(t, "draft", inv.State)
	assert.True(t, inv.Amount.Equal(decimal.NewFromInt(10)))

	require.NotNil(t, saved)
	assert.Equal(t, accounting.MoveTypeOutInvoice, saved.MoveType)
	require.Len(t, saved.Lines, 1)
	assert.Equal(t, &order.ID, saved.Lines[0].SaleOrderID)
	assert.True(t, saved.Lines[0].AnalyticDistribution.Has(account))
}

func TestAdvancePaymentService_Percentage(t *testing.T) {
	f := newAdvanceFixture(nil)
	first := newConfirmedOrder("S00001", nil, 200)
	second := newConfirmedOrder("S00002", nil, 50)
	ids := []uuid.UUID{first.ID, second.ID}

	f.orders.On("FindByIDs", mock.Anything, ids).Return([]sale.Order{first, second}, nil)
	f.moves.On("GenerateName", mock.Anything, accounting.MoveTypeOutInvoice).Return("INV/00001", nil).Once()
	f.moves.On("GenerateName", mock.Anything, accounting.MoveTypeOutInvoice).Return("INV/00002", nil).Once()
	f.moves.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Move")).Return(nil)

	resp, err := f.svc.CreateInvoices(context.Background(), AdvancePaymentRequest{
		OrderIDs: ids,
		Method:   "percentage",
		Amount:   decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	require.Len(t, resp.Invoices, 2)
	assert.True(t, resp.Invoices[0].Amount.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.Invoices[1].Amount.Equal(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "INV/00002", resp.Invoices[1].Name)
	f.projects.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAdvancePaymentService_Rejections(t *testing.T) {
	t.Run("bad amount", func(t *testing.T) {
		f := newAdvanceFixture(nil)
		_, err := f.svc.CreateInvoices(context.Background(), AdvancePaymentRequest{
			OrderIDs: []uuid.UUID{uuid.New()},
			Method:   "percentage",
			Amount:   decimal.NewFromInt(120),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		f.orders.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})

	t.Run("no orders", func(t *testing.T) {
		f := newAdvanceFixture(nil)
		_, err := f.svc.CreateInvoices(context.Background(), AdvancePaymentRequest{
			Method: "fixed",
			Amount: decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("draft order in the selection creates nothing", func(t *testing.T) {
		f := newAdvanceFixture(nil)
		confirmed := newConfirmedOrder("S00001", nil, 100)
		draft, _ := sale.NewOrder("S00002", nil, nil)
		ids := []uuid.UUID{confirmed.ID, draft.ID}
		f.orders.On("FindByIDs", mock.Anything, ids).Return([]sale.Order{confirmed, *draft}, nil)

		_, err := f.svc.CreateInvoices(context.Background(), AdvancePaymentRequest{
			OrderIDs: ids,
			Method:   "fixed",
			Amount:   decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		f.moves.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Zero(t, f.tx.executions)
	})

	t.Run("zero percentage amount on a later order creates nothing", func(t *testing.T) {
		f := newAdvanceFixture(nil)
		paid := newConfirmedOrder("S00001", nil, 200)
		free := newConfirmedOrder("S00002", nil, 0)
		ids := []uuid.UUID{paid.ID, free.ID}
		f.orders.On("FindByIDs", mock.Anything, ids).Return([]sale.Order{paid, free}, nil)

		_, err := f.svc.CreateInvoices(context.Background(), AdvancePaymentRequest{
			OrderIDs: ids,
			Method:   "percentage",
			Amount:   decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Contains(t, err.Error(), "S00002")
		assert.Zero(t, f.tx.executions)
		f.moves.AssertNotCalled(t, "GenerateName", mock.Anything, mock.Anything)
		f.moves.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("storage failure surfaces from the transaction", func(t *testing.T) {
		f := newAdvanceFixture(nil)
		first := newConfirmedOrder("S00001", nil, 100)
		second := newConfirmedOrder("S00002", nil, 100)
		ids := []uuid.UUID{first.ID, second.ID}
		f.orders.On("FindByIDs", mock.Anything, ids).Return([]sale.Order{first, second}, nil)
		f.moves.On("GenerateName", mock.Anything, accounting.MoveTypeOutInvoice).Return("INV/00001", nil).Once()
		f.moves.On("GenerateName", mock.Anything, accounting.MoveTypeOutInvoice).Return("INV/00002", nil).Once()
		f.moves.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Move")).Return(nil).Once()
		f.moves.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Move")).Return(errors.New("disk full")).Once()

		resp, err := f.svc.CreateInvoices(context.Background(), AdvancePaymentRequest{
			OrderIDs: ids,
			Method:   "fixed",
			Amount:   decimal.NewFromInt(10),
		})
		assert.EqualError(t, err, "disk full")
		assert.Nil(t, resp)
		assert.Equal(t, 1, f.tx.executions)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newAdvanceFixture(nil)
		id := uuid.New()
		f.orders.On("FindByIDs", mock.Anything, []uuid.UUID{id}).Return(nil, shared.ErrNotFound)

		_, err := f.svc.CreateInvoices(context.Background(), AdvancePaymentRequest{
			OrderIDs: []uuid.UUID{id},
			Method:   "fixed",
			Amount:   decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAdvancePaymentService_RecordsMetric(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := telemetry.NewLinkMetrics(provider.Meter("test"))
	require.NoError(t, err)

	f := newAdvanceFixture(metrics)
	order := newConfirmedOrder("S00001", nil, 100)
	f.orders.On("FindByIDs", mock.Anything, []uuid.UUID{order.ID}).Return([]sale.Order{order}, nil)
	f.moves.On("GenerateName", mock.Anything, accounting.MoveTypeOutInvoice).Return("INV/00001", nil)
	f.moves.On("Save", mock.Anything, mock.AnythingOfType("*accounting.Move")).Return(nil)

	_, err = f.svc.CreateInvoices(context.Background(), AdvancePaymentRequest{
		OrderIDs: []uuid.UUID{order.ID},
		Method:   "fixed",
		Amount:   decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "projectlink.down_payments.created" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(1), total)
}
