package business

import (
	"context"
	"fmt"
	"time"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/utils"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, in CreateBusinessInput) (*Business, error) {
	in.Trim()
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrBadRequest)
	}
	if in.BusinessName == "" {
		return nil, fmt.Errorf("%w: businessName is required", ErrBadRequest)
	}
	if !IsValidBusinessType(in.BusinessType) {
		return nil, fmt.Errorf("%w: businessType must be Product or Service", ErrBadRequest)
	}

	now := time.Now().UTC()
	nameLower := utils.NormalizeNameLower(in.BusinessName)
	slug := utils.Slugify(in.BusinessName)

	b := Business{
		Email:        in.Email,
		BusinessID:   in.BusinessID,
		BusinessName: in.BusinessName,
		NameLower:    nameLower,
		Keywords:     utils.KeywordsFromName(nameLower, slug),
		BusinessType: in.BusinessType,
		City:         in.City,
		State:        in.State,
		Phone:        in.Phone,
		LogoURL:      in.LogoURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, in.Email, b)
}

func (s *Service) Get(ctx context.Context, key string) (*Business, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: business key is required", ErrBadRequest)
	}
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: business not found", ErrNotFound)
	}
	return b, nil
}

func (s *Service) Search(ctx context.Context, q string, limit int64) ([]Business, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.repo.SearchByNamePrefix(ctx, q, limit)
}

func (s *Service) SetVerified(ctx context.Context, key string, verified bool) error {
	if key == "" {
		return fmt.Errorf("%w: business key is required", ErrBadRequest)
	}
	return s.repo.SetVerified(ctx, key, verified)
}
