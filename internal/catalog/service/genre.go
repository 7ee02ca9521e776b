package service

import (
	"context"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/pkg/pagex"
)

type GenreService struct {
	Store store.Store
}

func (s *GenreService) ListGenres(ctx context.Context, page pagex.PageRequest) ([]domain.Genre, error) {
	return s.Store.Genres().ListGenres(ctx, page)
}

func (s *GenreService) GetGenre(ctx context.Context, id int64) (domain.Genre, error) {
	return s.Store.Genres().GetGenreByID(ctx, id)
}

func (s *GenreService) CreateGenre(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	id, err := s.Store.Genres().CreateGenre(ctx, g)
	if err != nil {
		return domain.Genre{}, err
	}
	return s.Store.Genres().GetGenreByID(ctx, id)
}

func (s *GenreService) UpdateGenre(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	if err := s.Store.Genres().UpdateGenre(ctx, g); err != nil {
		return domain.Genre{}, err
	}
	return s.Store.Genres().GetGenreByID(ctx, g.ID)
}

func (s *GenreService) DeleteGenre(ctx context.Context, id int64) error {
	return s.Store.Genres().DeleteGenre(ctx, id)
}
