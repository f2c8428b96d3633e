package services

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"userinfo-service/internal/application/ports"
	domain "userinfo-service/internal/domain/userinfo"
)

// UserInfoService writes to the store first and then hands the result to the
// mirror; a mirror failure never fails the write.
type UserInfoService struct {
	userInfoRepository domain.Repository
	searchIndex        domain.SearchIndex
	mirror             ports.SearchSync
	mCounter           *prometheus.CounterVec
}

func NewUserInfoService(
	userInfoRepository domain.Repository,
	searchIndex domain.SearchIndex,
	mirror ports.SearchSync,
	mCounter *prometheus.CounterVec,
) ports.UserInfoService {
	return &UserInfoService{
		userInfoRepository: userInfoRepository,
		searchIndex:        searchIndex,
		mirror:             mirror,
		mCounter:           mCounter,
	}
}

func (s *UserInfoService) Create(ctx context.Context, u domain.UserInfo) (*domain.UserInfo, error) {
	if u.HasID() {
		return nil, domain.ErrIDExists
	}

	saved, err := s.userInfoRepository.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	s.mirror.Index(ctx, saved)

	s.inc("user_info_created_total")

	return saved, nil
}

func (s *UserInfoService) Update(ctx context.Context, u domain.UserInfo) (*domain.UserInfo, error) {
	if !u.HasID() {
		return nil, domain.ErrIDRequired
	}
	exists, err := s.userInfoRepository.ExistsByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	saved, err := s.userInfoRepository.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	s.mirror.Index(ctx, saved)

	s.inc("user_info_updated_total")

	return saved, nil
}

func (s *UserInfoService) PartialUpdate(ctx context.Context, patch domain.Patch) (*domain.UserInfo, error) {
	if patch.ID == 0 {
		return nil, domain.ErrIDRequired
	}
	existing, err := s.userInfoRepository.FindByID(ctx, patch.ID)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(existing)

	saved, err := s.userInfoRepository.Save(ctx, *existing)
	if err != nil {
		return nil, err
	}
	s.mirror.Index(ctx, saved)

	s.inc("user_info_patched_total")

	return saved, nil
}

func (s *UserInfoService) FindAll(ctx context.Context, p domain.Pageable) (domain.Page, error) {
	items, err := s.userInfoRepository.FindAll(ctx, p)
	if err != nil {
		return domain.Page{}, err
	}
	total, err := s.userInfoRepository.Count(ctx)
	if err != nil {
		return domain.Page{}, err
	}

	return domain.Page{Items: items, Total: total, Pageable: p}, nil
}

func (s *UserInfoService) FindOne(ctx context.Context, id domain.ID) (*domain.UserInfo, error) {
	return s.userInfoRepository.FindByID(ctx, id)
}

func (s *UserInfoService) Exists(ctx context.Context, id domain.ID) (bool, error) {
	return s.userInfoRepository.ExistsByID(ctx, id)
}

// Delete is idempotent: an unknown id is not an error. The index removal is
// queued even when the store delete fails.
func (s *UserInfoService) Delete(ctx context.Context, id domain.ID) error {
	deleted, err := s.userInfoRepository.DeleteByID(ctx, id)
	s.mirror.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user info %d: %w", id, err)
	}

	if deleted {
		s.inc("user_info_deleted_total")
	}

	return nil
}

func (s *UserInfoService) Search(ctx context.Context, query string, p domain.Pageable) (domain.Page, error) {
	return s.searchIndex.Search(ctx, query, p)
}

func (s *UserInfoService) Count(ctx context.Context) (int64, error) {
	return s.userInfoRepository.Count(ctx)
}

func (s *UserInfoService) SearchCount(ctx context.Context) (int64, error) {
	return s.searchIndex.Count(ctx)
}

func (s *UserInfoService) inc(result string) {
	if s.mCounter != nil {
		s.mCounter.WithLabelValues(result).Inc()
	}
}
