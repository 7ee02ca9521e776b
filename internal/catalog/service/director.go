package service

import (
	"context"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/pkg/pagex"
)

type DirectorService struct {
	Store store.Store
}

func (s *DirectorService) ListDirectors(ctx context.Context, page pagex.PageRequest) ([]domain.Director, error) {
	return s.Store.Directors().ListDirectors(ctx, page)
}

func (s *DirectorService) GetDirector(ctx context.Context, id int64) (domain.Director, error) {
	return s.Store.Directors().GetDirectorByID(ctx, id)
}

func (s *DirectorService) CreateDirector(ctx context.Context, d domain.Director) (domain.Director, error) {
	id, err := s.Store.Directors().CreateDirector(ctx, d)
	if err != nil {
		return domain.Director{}, err
	}
	return s.Store.Directors().GetDirectorByID(ctx, id)
}

func (s *DirectorService) UpdateDirector(ctx context.Context, d domain.Director) (domain.Director, error) {
	if err := s.Store.Directors().UpdateDirector(ctx, d); err != nil {
		return domain.Director{}, err
	}
	return s.Store.Directors().GetDirectorByID(ctx, d.ID)
}

func (s *DirectorService) DeleteDirector(ctx context.Context, id int64) error {
	return s.Store.Directors().DeleteDirector(ctx, id)
}
