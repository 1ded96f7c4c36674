package project

import (
	"context"

	"github.com/erp/projectlink/internal/domain/action"
	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/domain/project"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepository is a mock implementation of project.Repository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]project.Project, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of analytic.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*analytic.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytic.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, a *analytic.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockPurchaseLinkReader is a mock implementation of project.PurchaseLinkReader
type MockPurchaseLinkReader struct {
	mock.Mock
}

func (m *MockPurchaseLinkReader) PurchaseTotalsByAccount(ctx context.Context, keys []string) (map[string]project.LinkTotals, error) {
	args := m.Called(ctx, keys)
	return args.Get(0).(map[string]project.LinkTotals), args.Error(1)
}

func (m *MockPurchaseLinkReader) PurchaseOrderIDs(ctx context.Context, keys []string) ([]uuid.UUID, error) {
	args := m.Called(ctx, keys)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPurchaseLinkReader) PurchaseOrderLineIDs(ctx context.Context, keys []string) ([]uuid.UUID, error) {
	args := m.Called(ctx, keys)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPurchaseLinkReader) InvoiceTotalsByAccount(ctx context.Context, keys []string) (map[string]project.LinkTotals, error) {
	args := m.Called(ctx, keys)
	return args.Get(0).(map[string]project.LinkTotals), args.Error(1)
}

func (m *MockPurchaseLinkReader) InvoiceIDs(ctx context.Context, keys []string) ([]uuid.UUID, error) {
	args := m.Called(ctx, keys)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPurchaseLinkReader) InvoiceLineIDs(ctx context.Context, keys []string) ([]uuid.UUID, error) {
	args := m.Called(ctx, keys)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockSaleLinkReader is a mock implementation of project.SaleLinkReader
type MockSaleLinkReader struct {
	mock.Mock
}

func (m *MockSaleLinkReader) SaleOrderCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockSaleLinkReader) CustomerInvoiceCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockSaleLinkReader) SaleOrderIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockSaleLinkReader) CustomerInvoiceIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockActionRepository is a mock implementation of action.Repository
type MockActionRepository struct {
	mock.Mock
}

func (m *MockActionRepository) FindByXMLID(ctx context.Context, xmlID string) (*action.StoredAction, error) {
	args := m.Called(ctx, xmlID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*action.StoredAction), args.Error(1)
}

// newTestProject returns a project bound to a fresh analytic account
func newTestProject(name string) project.Project {
	p, _ := project.NewProject(name, project.VisibilityEmployees)
	p.AttachAnalyticAccount(uuid.New())
	return *p
}

func accountKey(p project.Project) string {
	key, _ := p.AccountKey()
	return key
}
