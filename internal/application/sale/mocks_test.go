package sale

import (
	"context"

	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/domain/project"
	"github.com/erp/projectlink/internal/domain/sale"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockSaleOrderRepository is a mock implementation of sale.Repository
type MockSaleOrderRepository struct {
	mock.Mock
}

func (m *MockSaleOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Order), args.Error(1)
}

func (m *MockSaleOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]sale.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sale.Order), args.Error(1)
}

func (m *MockSaleOrderRepository) Save(ctx context.Context, o *sale.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSaleOrderRepository) GenerateName(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

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

// MockMoveRepository is a mock implementation of accounting.Repository
type MockMoveRepository struct {
	mock.Mock
}

func (m *MockMoveRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Move, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Move), args.Error(1)
}

func (m *MockMoveRepository) Save(ctx context.Context, mv *accounting.Move) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockMoveRepository) GenerateName(ctx context.Context, moveType accounting.MoveType) (string, error) {
	args := m.Called(ctx, moveType)
	return args.String(0), args.Error(1)
}

func newConfirmedOrder(name string, projectID *uuid.UUID, price int64) sale.Order {
	o, _ := sale.NewOrder(name, nil, projectID)
	_, _ = o.AddLine(nil, "Consulting", decimal.NewFromInt(1), decimal.NewFromInt(price))
	_ = o.Confirm()
	return *o
}

// passThroughScope runs the function against the mock move repository and
// counts how often a transaction was opened
type passThroughScope struct {
	moves      accounting.Repository
	executions int
}

func (s *passThroughScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.executions++
	return fn(s)
}

func (s *passThroughScope) MoveRepo() accounting.Repository { return s.moves }
