package reward

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	rewarderrors "opsdb/internal/reward/errors"
	"opsdb/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=reward_service.go -destination=mock/reward_service_mock.go -package=mock
type Service interface {
	CreateReason(ctx context.Context, req CreateReasonRequest) (ReasonResponse, error)
	GetReasons(ctx context.Context, activeOnly bool) ([]ReasonResponse, error)
	UpdateReason(ctx context.Context, id int64, req UpdateReasonRequest) (ReasonResponse, error)
	Award(ctx context.Context, req AwardRequest) (AwardResponse, error)
	Redeem(ctx context.Context, req RedeemRequest) (RedemptionResponse, error)
	GetBalance(ctx context.Context, employeeID int64) (BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("reward.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reward.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateReason(ctx context.Context, req CreateReasonRequest) (ReasonResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReasonResponse{}, err
	}
	defer tx.Rollback()

	reason := &RewardReason{
		Label:    req.Label,
		Points:   req.Points,
		IsActive: true,
	}

	if err := s.repo.WithTx(tx).CreateReason(ctx, reason); err != nil {
		return ReasonResponse{}, mapReasonError(err)
	}

	if err := tx.Commit(); err != nil {
		return ReasonResponse{}, mapReasonError(err)
	}

	return mapReasonToResponse(*reason), nil
}

func (s *service) GetReasons(ctx context.Context, activeOnly bool) ([]ReasonResponse, error) {
	reasons, err := s.repo.FindReasons(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	res := make([]ReasonResponse, len(reasons))
	for i, r := range reasons {
		res[i] = mapReasonToResponse(r)
	}
	return res, nil
}

func (s *service) UpdateReason(ctx context.Context, id int64, req UpdateReasonRequest) (ReasonResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReasonResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	reason, err := qtx.FindReasonByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReasonResponse{}, rewarderrors.ErrReasonNotFound
		}
		return ReasonResponse{}, err
	}

	reason.Label = req.Label
	reason.Points = req.Points
	if req.IsActive != nil {
		reason.IsActive = *req.IsActive
	}

	if err := qtx.UpdateReason(ctx, reason); err != nil {
		return ReasonResponse{}, mapReasonError(err)
	}

	if err := tx.Commit(); err != nil {
		return ReasonResponse{}, mapReasonError(err)
	}

	return mapReasonToResponse(*reason), nil
}

// Award writes the ledger entry and bumps the employee balance inside
// one transaction so the running balance cannot drift from the ledger.
func (s *service) Award(ctx context.Context, req AwardRequest) (AwardResponse, error) {
	dateAwarded := time.Now().UTC()
	if req.DateAwarded != "" {
		d, err := time.Parse("2006-01-02", req.DateAwarded)
		if err != nil {
			return AwardResponse{}, apperror.InvalidField("date_awarded")
		}
		dateAwarded = d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AwardResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	balance, found, err := qtx.GetPointBalance(ctx, req.EmployeeID)
	if err != nil {
		return AwardResponse{}, err
	}
	if !found {
		return AwardResponse{}, rewarderrors.ErrEmployeeNotFound
	}

	reason, err := qtx.FindReasonByID(ctx, req.ReasonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AwardResponse{}, rewarderrors.ErrReasonNotFound
		}
		return AwardResponse{}, err
	}
	if !reason.IsActive {
		return AwardResponse{}, rewarderrors.ErrReasonInactive
	}

	award := &EmployeeReward{
		EmployeeID:  req.EmployeeID,
		ReasonID:    reason.ID,
		Points:      reason.Points,
		DateAwarded: dateAwarded,
		Notes:       req.Notes,
	}

	if err := qtx.CreateAward(ctx, award); err != nil {
		return AwardResponse{}, err
	}

	if err := qtx.AddToPointBalance(ctx, req.EmployeeID, reason.Points); err != nil {
		return AwardResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AwardResponse{}, err
	}

	s.logger.Info("points awarded",
		zap.Int64("employee_id", req.EmployeeID),
		zap.Int64("reason_id", reason.ID),
		zap.Int("points", reason.Points),
	)

	return AwardResponse{
		ID:          award.ID,
		EmployeeID:  award.EmployeeID,
		ReasonID:    award.ReasonID,
		Points:      award.Points,
		DateAwarded: award.DateAwarded.Format("2006-01-02"),
		Notes:       award.Notes,
		NewBalance:  balance + reason.Points,
	}, nil
}

// Redeem rejects redemptions exceeding the current balance, then
// writes the redemption entry and decrements the balance atomically.
func (s *service) Redeem(ctx context.Context, req RedeemRequest) (RedemptionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RedemptionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	balance, found, err := qtx.GetPointBalance(ctx, req.EmployeeID)
	if err != nil {
		return RedemptionResponse{}, err
	}
	if !found {
		return RedemptionResponse{}, rewarderrors.ErrEmployeeNotFound
	}
	if balance < req.Points {
		return RedemptionResponse{}, rewarderrors.ErrInsufficientBalance
	}

	red := &EmployeeRewardRedemption{
		EmployeeID:   req.EmployeeID,
		Points:       req.Points,
		Type:         req.Type,
		ApprovedBy:   req.ApprovedBy,
		DateRedeemed: time.Now().UTC(),
	}

	if err := qtx.CreateRedemption(ctx, red); err != nil {
		return RedemptionResponse{}, err
	}

	if err := qtx.AddToPointBalance(ctx, req.EmployeeID, -req.Points); err != nil {
		return RedemptionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RedemptionResponse{}, err
	}

	s.logger.Info("points redeemed",
		zap.Int64("employee_id", req.EmployeeID),
		zap.Int("points", req.Points),
		zap.String("type", req.Type),
	)

	return RedemptionResponse{
		ID:         red.ID,
		EmployeeID: red.EmployeeID,
		Points:     red.Points,
		Type:       red.Type,
		ApprovedBy: red.ApprovedBy,
		NewBalance: balance - req.Points,
	}, nil
}

func (s *service) GetBalance(ctx context.Context, employeeID int64) (BalanceResponse, error) {
	balance, found, err := s.repo.GetPointBalance(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	if !found {
		return BalanceResponse{}, rewarderrors.ErrEmployeeNotFound
	}

	awards, err := s.repo.FindAwardsByEmployee(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	reds, err := s.repo.FindRedemptionsByEmployee(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}

	resp := BalanceResponse{
		EmployeeID:  employeeID,
		Balance:     balance,
		Awards:      make([]AwardResponse, len(awards)),
		Redemptions: make([]RedemptionResponse, len(reds)),
	}
	for i, a := range awards {
		resp.Awards[i] = AwardResponse{
			ID:          a.ID,
			EmployeeID:  a.EmployeeID,
			ReasonID:    a.ReasonID,
			Points:      a.Points,
			DateAwarded: a.DateAwarded.Format("2006-01-02"),
			Notes:       a.Notes,
		}
	}
	for i, rd := range reds {
		resp.Redemptions[i] = RedemptionResponse{
			ID:         rd.ID,
			EmployeeID: rd.EmployeeID,
			Points:     rd.Points,
			Type:       rd.Type,
			ApprovedBy: rd.ApprovedBy,
		}
	}
	return resp, nil
}

func mapReasonError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return rewarderrors.ErrDuplicateReason
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_reward_reason_label") {
		return rewarderrors.ErrDuplicateReason
	}
	return err
}

func mapReasonToResponse(r RewardReason) ReasonResponse {
	return ReasonResponse{
		ID:       r.ID,
		Label:    r.Label,
		Points:   r.Points,
		IsActive: r.IsActive,
	}
}
