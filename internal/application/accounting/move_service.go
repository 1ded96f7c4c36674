package accounting

import (
	"context"

	"github.com/erp/projectlink/internal/domain/accounting"
	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/infrastructure/logger"
	"github.com/erp/projectlink/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MoveService handles vendor bills, customer invoices and other moves
type MoveService struct {
	repo accounting.Repository
}

// NewMoveService creates a new MoveService
func NewMoveService(repo accounting.Repository) *MoveService {
	return &MoveService{repo: repo}
}

// Create creates a draft move with its lines
func (s *MoveService) Create(ctx context.Context, req CreateMoveRequest) (*MoveResponse, error) {
	moveType := accounting.MoveType(req.MoveType)
	ctx, span := telemetry.StartServiceSpan(ctx, "account_move", "create",
		telemetry.SpanAttrMoveType, req.MoveType)
	defer span.End()

	name, err := s.repo.GenerateName(ctx, moveType)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	move, err := accounting.NewMove(name, moveType, req.PartnerID)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if _, err := move.AddLine(accounting.LineInput{
			Name:         line.Name,
			Quantity:     line.Quantity,
			PriceUnit:    line.PriceUnit,
			Distribution: analytic.Distribution(line.AnalyticDistribution),
			SaleOrderID:  line.SaleOrderID,
		}); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Save(ctx, move); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Account move created",
		zap.String("move_id", move.ID.String()),
		zap.String("name", move.Name),
		zap.String("move_type", req.MoveType))
	resp := ToMoveResponse(move)
	return &resp, nil
}

// GetByID returns a move with its lines
func (s *MoveService) GetByID(ctx context.Context, id uuid.UUID) (*MoveResponse, error) {
	move, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMoveResponse(move)
	return &resp, nil
}

// Post posts a draft move
func (s *MoveService) Post(ctx context.Context, id uuid.UUID) (*MoveResponse, error) {
	return s.transition(ctx, id, "post", (*accounting.Move).Post)
}

// Cancel cancels a move; cancelled moves are ignored by every project counter
func (s *MoveService) Cancel(ctx context.Context, id uuid.UUID) (*MoveResponse, error) {
	return s.transition(ctx, id, "cancel", (*accounting.Move).Cancel)
}

func (s *MoveService) transition(ctx context.Context, id uuid.UUID, method string, apply func(*accounting.Move) error) (*MoveResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "account_move", method,
		telemetry.SpanAttrMoveID, id.String())
	defer span.End()

	move, err := s.repo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := apply(move); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, move); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	logger.L(ctx).Info("Account move state changed",
		zap.String("move_id", move.ID.String()),
		zap.String("state", string(move.State)))
	resp := ToMoveResponse(move)
	return &resp, nil
}
