package reward

import (
	"context"
	"database/sql"
	"testing"

	rewarderrors "opsdb/internal/reward/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	Repository
	reason      *RewardReason
	balance     int
	balanceOK   bool
	awards      []EmployeeReward
	redemptions []EmployeeRewardRedemption
	deltas      []int
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) FindReasonByID(ctx context.Context, id int64) (*RewardReason, error) {
	return f.reason, nil
}
func (f *fakeRepo) CreateAward(ctx context.Context, award *EmployeeReward) error {
	award.ID = int64(len(f.awards) + 1)
	f.awards = append(f.awards, *award)
	return nil
}
func (f *fakeRepo) CreateRedemption(ctx context.Context, red *EmployeeRewardRedemption) error {
	red.ID = int64(len(f.redemptions) + 1)
	f.redemptions = append(f.redemptions, *red)
	return nil
}
func (f *fakeRepo) GetPointBalance(ctx context.Context, employeeID int64) (int, bool, error) {
	return f.balance, f.balanceOK, nil
}
func (f *fakeRepo) AddToPointBalance(ctx context.Context, employeeID int64, delta int) error {
	f.deltas = append(f.deltas, delta)
	f.balance += delta
	return nil
}

func TestService_Award(t *testing.T) {
	t.Run("writes ledger and bumps balance in one commit", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{
			reason:    &RewardReason{ID: 3, Label: "Perfect Attendance", Points: 50, IsActive: true},
			balance:   100,
			balanceOK: true,
		}
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Award(context.Background(), AwardRequest{EmployeeID: 70101, ReasonID: 3})
		assert.NoError(t, err)
		assert.Equal(t, 50, resp.Points)
		assert.Equal(t, 150, resp.NewBalance)
		assert.Equal(t, []int{50}, repo.deltas)
		assert.Len(t, repo.awards, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inactive reason is rejected", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{
			reason:    &RewardReason{ID: 3, Points: 50, IsActive: false},
			balanceOK: true,
		}
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Award(context.Background(), AwardRequest{EmployeeID: 70101, ReasonID: 3})
		assert.ErrorIs(t, err, rewarderrors.ErrReasonInactive)
		assert.Empty(t, repo.awards)
		assert.Empty(t, repo.deltas)
	})

	t.Run("unknown employee is rejected", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{balanceOK: false}
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Award(context.Background(), AwardRequest{EmployeeID: 99999, ReasonID: 3})
		assert.ErrorIs(t, err, rewarderrors.ErrEmployeeNotFound)
	})
}

func TestService_Redeem(t *testing.T) {
	t.Run("decrements balance", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{balance: 120, balanceOK: true}
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Redeem(context.Background(), RedeemRequest{
			EmployeeID: 70101,
			Points:     100,
			Type:       "gift_card",
		})
		assert.NoError(t, err)
		assert.Equal(t, 20, resp.NewBalance)
		assert.Equal(t, []int{-100}, repo.deltas)
	})

	t.Run("insufficient balance is rejected without writes", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakeRepo{balance: 30, balanceOK: true}
		svc := NewService(db, repo)

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Redeem(context.Background(), RedeemRequest{
			EmployeeID: 70101,
			Points:     100,
			Type:       "gift_card",
		})
		assert.ErrorIs(t, err, rewarderrors.ErrInsufficientBalance)
		assert.Empty(t, repo.redemptions)
		assert.Empty(t, repo.deltas)
	})
}
