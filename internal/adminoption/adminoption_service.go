package adminoption

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"opsdb/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrOptionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Admin option not found",
		http.StatusNotFound,
	)
	ErrDuplicateOption = apperror.New(
		apperror.CodeConflict,
		"This option already exists in the category",
		http.StatusConflict,
	)
)

type CreateOptionRequest struct {
	Category string `json:"category" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

type OptionResponse struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Value    string `json:"value"`
	IsActive bool   `json:"is_active"`
}

type Service interface {
	Create(ctx context.Context, req CreateOptionRequest) (OptionResponse, error)
	GetByCategory(ctx context.Context, category string, activeOnly bool) ([]OptionResponse, error)
	Deactivate(ctx context.Context, id int64) (OptionResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateOptionRequest) (OptionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OptionResponse{}, err
	}
	defer tx.Rollback()

	opt := &AdminOption{
		Category: strings.TrimSpace(req.Category),
		Value:    strings.TrimSpace(req.Value),
		IsActive: true,
	}

	if err := s.repo.WithTx(tx).Create(ctx, opt); err != nil {
		return OptionResponse{}, mapOptionError(err)
	}

	if err := tx.Commit(); err != nil {
		return OptionResponse{}, mapOptionError(err)
	}

	return mapToResponse(*opt), nil
}

func (s *service) GetByCategory(ctx context.Context, category string, activeOnly bool) ([]OptionResponse, error) {
	opts, err := s.repo.FindByCategory(ctx, category, activeOnly)
	if err != nil {
		return nil, err
	}

	res := make([]OptionResponse, len(opts))
	for i, o := range opts {
		res[i] = mapToResponse(o)
	}
	return res, nil
}

func (s *service) Deactivate(ctx context.Context, id int64) (OptionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OptionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	opt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OptionResponse{}, ErrOptionNotFound
		}
		return OptionResponse{}, err
	}

	opt.IsActive = false
	if err := qtx.Update(ctx, opt); err != nil {
		return OptionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OptionResponse{}, err
	}

	return mapToResponse(*opt), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapOptionError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateOption
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_admin_option") {
		return ErrDuplicateOption
	}
	return err
}

func mapToResponse(opt AdminOption) OptionResponse {
	return OptionResponse{
		ID:       opt.ID,
		Category: opt.Category,
		Value:    opt.Value,
		IsActive: opt.IsActive,
	}
}
