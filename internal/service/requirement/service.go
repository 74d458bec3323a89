package requirement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/repository"
)

// ErrCatalogUnavailable means the requirement catalog could not be read.
// Classification fails closed on it: no requirement is treated as satisfied.
var ErrCatalogUnavailable = errors.New("requirement catalog unavailable")

const cacheTTL = 5 * time.Minute

type Service interface {
	ListActive(ctx context.Context, serviceType domain.ServiceType) ([]domain.DocumentRequirement, error)
}

type service struct {
	reqRepo repository.RequirementRepository
	redis   *redis.Client
}

func NewService(reqRepo repository.RequirementRepository, redis *redis.Client) Service {
	return &service{
		reqRepo: reqRepo,
		redis:   redis,
	}
}

func (s *service) ListActive(ctx context.Context, serviceType domain.ServiceType) ([]domain.DocumentRequirement, error) {
	cacheKey := "requirements:" + string(serviceType)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var reqs []domain.DocumentRequirement
			if json.Unmarshal([]byte(cached), &reqs) == nil {
				return reqs, nil
			}
		}
	}

	reqs, err := s.reqRepo.ListActiveByServiceType(ctx, serviceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	if s.redis != nil {
		if reqsJSON, err := json.Marshal(reqs); err == nil {
			_ = s.redis.Set(ctx, cacheKey, reqsJSON, cacheTTL).Err()
		}
	}

	return reqs, nil
}
