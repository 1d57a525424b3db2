package review

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"opsdb/internal/employee"
	"opsdb/internal/events"
	"opsdb/internal/messaging/kafka"
	reviewerrors "opsdb/internal/review/errors"
	"opsdb/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=review_service.go -destination=mock/review_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, status string) ([]ReviewResponse, error)
	GetByID(ctx context.Context, id int64) (ReviewResponse, error)
	Approve(ctx context.Context, id int64, req ApproveRequest) (ApproveResponse, error)
	Reject(ctx context.Context, id int64, req RejectRequest) (ReviewResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	outbox       kafka.OutboxRepository
	emailDomain  string
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	emailDomain string,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employeeRepo, nil, emailDomain, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	emailDomain string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("review.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		outbox:       outboxRepo,
		emailDomain:  emailDomain,
		logger:       l,
	}
}

// CompanyEmail derives the deterministic address assigned on approval.
func CompanyEmail(firstName, lastName, domain string) string {
	first := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(firstName), " ", ""))
	last := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lastName), " ", ""))
	return fmt.Sprintf("%s.%s@%s", first, last, domain)
}

func (s *service) GetAll(ctx context.Context, status string) ([]ReviewResponse, error) {
	revs, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	res := make([]ReviewResponse, len(revs))
	for i, rev := range revs {
		res[i] = mapToResponse(rev)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (ReviewResponse, error) {
	rev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewResponse{}, reviewerrors.ErrReviewNotFound
		}
		return ReviewResponse{}, err
	}
	return mapToResponse(*rev), nil
}

// Approve constructs a live Employee from the staged fields and flips
// the review to Verified, in one transaction. A numeric ID that
// slipped into the directory after staging surfaces as a conflict at
// commit time and rolls the whole approval back.
func (s *service) Approve(ctx context.Context, id int64, req ApproveRequest) (ApproveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ApproveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rev, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApproveResponse{}, reviewerrors.ErrReviewNotFound
		}
		return ApproveResponse{}, err
	}
	if rev.Status != StatusPending {
		return ApproveResponse{}, reviewerrors.ErrReviewNotPending
	}

	email := CompanyEmail(rev.FirstName, rev.LastName, s.emailDomain)
	empl := &employee.Employee{
		ID:           rev.EmployeeID,
		FirstName:    rev.FirstName,
		LastName:     rev.LastName,
		FullName:     strings.TrimSpace(rev.FirstName + " " + rev.LastName),
		CompanyEmail: email,
		Batch:        rev.Batch,
		AgentID:      rev.AgentID,
		AxonifyID:    rev.AxonifyID,
		BOUser:       rev.BOUser,
		Supervisor:   rev.Supervisor,
		Manager:      rev.Manager,
		Shift:        rev.Shift,
		Department:   rev.Department,
		Role:         rev.Role,
		HireDate:     rev.HireDate,
		Phase1Date:   rev.Phase1Date,
		Phase2Date:   rev.Phase2Date,
		Phase3Date:   rev.Phase3Date,
		Status:       employee.StatusActive,
	}

	if err := s.employeeRepo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("approve review employee create failed",
			zap.Int64("review_id", rev.ID),
			zap.Int64("employee_id", rev.EmployeeID),
			zap.Error(err),
		)
		return ApproveResponse{}, mapDuplicate(err)
	}

	now := time.Now().UTC()
	rev.Status = StatusVerified
	rev.ReviewedBy = &req.ReviewerID
	rev.ReviewedAt = &now

	if err := qtx.Update(ctx, rev); err != nil {
		return ApproveResponse{}, err
	}

	if s.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		payload, err := json.Marshal(events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID,
			Source:     "review",
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			return ApproveResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   strconv.FormatInt(empl.ID, 10),
			EventType:     "employee_created",
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("approve review outbox persist failed",
				zap.Int64("employee_id", empl.ID),
				zap.Error(err),
			)
			return ApproveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ApproveResponse{}, mapDuplicate(err)
	}

	s.logger.Info("review approved",
		zap.Int64("review_id", rev.ID),
		zap.Int64("employee_id", empl.ID),
		zap.String("reviewer", req.ReviewerID),
	)

	return ApproveResponse{
		Review:     mapToResponse(*rev),
		EmployeeID: empl.ID,
		Email:      email,
	}, nil
}

// Reject marks the review Rejected, prepending the reviewer's notes.
// Re-rejecting stacks additional notes without leaving the terminal
// state.
func (s *service) Reject(ctx context.Context, id int64, req RejectRequest) (ReviewResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rev, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewResponse{}, reviewerrors.ErrReviewNotFound
		}
		return ReviewResponse{}, err
	}
	if rev.Status == StatusVerified {
		return ReviewResponse{}, reviewerrors.ErrReviewNotPending
	}

	note := "Rejected: " + req.Notes
	if rev.Notes != "" {
		note = note + "\n" + rev.Notes
	}

	now := time.Now().UTC()
	rev.Notes = note
	rev.Status = StatusRejected
	rev.ReviewedBy = &req.ReviewerID
	rev.ReviewedAt = &now

	if err := qtx.Update(ctx, rev); err != nil {
		return ReviewResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ReviewResponse{}, err
	}

	s.logger.Info("review rejected",
		zap.Int64("review_id", rev.ID),
		zap.String("reviewer", req.ReviewerID),
	)

	return mapToResponse(*rev), nil
}

func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return reviewerrors.ErrEmployeeAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return reviewerrors.ErrEmployeeAlreadyExists
	}
	return err
}

func mapToResponse(rev NewEmployeeReview) ReviewResponse {
	resp := ReviewResponse{
		ID:         rev.ID,
		EmployeeID: rev.EmployeeID,
		FirstName:  rev.FirstName,
		LastName:   rev.LastName,
		Batch:      rev.Batch,
		Supervisor: rev.Supervisor,
		Manager:    rev.Manager,
		Shift:      rev.Shift,
		Department: rev.Department,
		Role:       rev.Role,
		Notes:      rev.Notes,
		Status:     rev.Status,
		ReviewedBy: rev.ReviewedBy,
	}
	if rev.HireDate != nil {
		resp.HireDate = rev.HireDate.Format("2006-01-02")
	}
	if rev.ReviewedAt != nil {
		resp.ReviewedAt = rev.ReviewedAt.Format(time.RFC3339)
	}
	return resp
}
