package reward

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=reward_repo.go -destination=mock/reward_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateReason(ctx context.Context, reason *RewardReason) error
	FindReasons(ctx context.Context, activeOnly bool) ([]RewardReason, error)
	FindReasonByID(ctx context.Context, id int64) (*RewardReason, error)
	UpdateReason(ctx context.Context, reason *RewardReason) error

	CreateAward(ctx context.Context, award *EmployeeReward) error
	FindAwardsByEmployee(ctx context.Context, employeeID int64) ([]EmployeeReward, error)

	CreateRedemption(ctx context.Context, red *EmployeeRewardRedemption) error
	FindRedemptionsByEmployee(ctx context.Context, employeeID int64) ([]EmployeeRewardRedemption, error)

	GetPointBalance(ctx context.Context, employeeID int64) (int, bool, error)
	AddToPointBalance(ctx context.Context, employeeID int64, delta int) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) CreateReason(ctx context.Context, reason *RewardReason) error {
	return r.db.WithContext(ctx).Create(reason).Error
}

func (r *repository) FindReasons(ctx context.Context, activeOnly bool) ([]RewardReason, error) {
	var reasons []RewardReason
	q := r.db.WithContext(ctx).Order("label")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&reasons).Error
	return reasons, err
}

func (r *repository) FindReasonByID(ctx context.Context, id int64) (*RewardReason, error) {
	var reason RewardReason
	err := r.db.WithContext(ctx).First(&reason, "id = ?", id).Error
	return &reason, err
}

func (r *repository) UpdateReason(ctx context.Context, reason *RewardReason) error {
	return r.db.WithContext(ctx).Save(reason).Error
}

func (r *repository) CreateAward(ctx context.Context, award *EmployeeReward) error {
	return r.db.WithContext(ctx).Create(award).Error
}

func (r *repository) FindAwardsByEmployee(ctx context.Context, employeeID int64) ([]EmployeeReward, error) {
	var awards []EmployeeReward
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date_awarded desc").
		Find(&awards).Error
	return awards, err
}

func (r *repository) CreateRedemption(ctx context.Context, red *EmployeeRewardRedemption) error {
	return r.db.WithContext(ctx).Create(red).Error
}

func (r *repository) FindRedemptionsByEmployee(ctx context.Context, employeeID int64) ([]EmployeeRewardRedemption, error) {
	var reds []EmployeeRewardRedemption
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date_redeemed desc").
		Find(&reds).Error
	return reds, err
}

func (r *repository) GetPointBalance(ctx context.Context, employeeID int64) (int, bool, error) {
	var balances []int
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("point_balance").
		Where("id = ?", employeeID).
		Scan(&balances).Error
	if err != nil {
		return 0, false, err
	}
	if len(balances) == 0 {
		return 0, false, nil
	}
	return balances[0], true, nil
}

func (r *repository) AddToPointBalance(ctx context.Context, employeeID int64, delta int) error {
	return r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Update("point_balance", gorm.Expr("point_balance + ?", delta)).Error
}
