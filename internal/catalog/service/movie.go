package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/store"
)

var ErrUnknownGenre = errors.New("unknown_genre")

// MovieService owns the catalog's movie operations, including the
// reaction toggles that keep the denormalized counters in step.
type MovieService struct {
	Store store.Store
}

// CreateMovieInput carries a full movie submission.
type CreateMovieInput struct {
	Title       string
	Description string
	DirectorID  int64
	GenreIDs    []int64
}

// UpdateMovieInput is a partial mutation; nil fields stay untouched.
type UpdateMovieInput struct {
	Title       *string
	Description *string
	DirectorID  *int64
	GenreIDs    *[]int64
}

func (s *MovieService) ListMovies(ctx context.Context, q store.MovieListQuery) (store.MoviePage, error) {
	return s.Store.Movies().ListMovies(ctx, q)
}

// GetMovie fetches one movie; a non-empty viewerID annotates it with that
// viewer's reaction.
func (s *MovieService) GetMovie(ctx context.Context, id int64, viewerID string) (domain.Movie, error) {
	m, err := s.Store.Movies().GetMovieByID(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}
	if viewerID != "" {
		reaction, err := s.Store.Movies().GetReaction(ctx, id, viewerID)
		if err != nil {
			return domain.Movie{}, err
		}
		m.LikeStatus = reaction
	}
	return m, nil
}

func (s *MovieService) CreateMovie(ctx context.Context, in CreateMovieInput) (domain.Movie, error) {
	if err := s.validateRefs(ctx, &in.DirectorID, in.GenreIDs); err != nil {
		return domain.Movie{}, err
	}

	var id int64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		id, err = tx.Movies().CreateMovie(ctx, domain.Movie{
			Title:       in.Title,
			Description: in.Description,
			DirectorID:  in.DirectorID,
		})
		if err != nil {
			return err
		}
		return tx.Movies().SetMovieGenres(ctx, id, in.GenreIDs)
	})
	if err != nil {
		return domain.Movie{}, err
	}

	return s.Store.Movies().GetMovieByID(ctx, id)
}

func (s *MovieService) UpdateMovie(ctx context.Context, id int64, in UpdateMovieInput) (domain.Movie, error) {
	var genreIDs []int64
	if in.GenreIDs != nil {
		genreIDs = *in.GenreIDs
	}
	if err := s.validateRefs(ctx, in.DirectorID, genreIDs); err != nil {
		return domain.Movie{}, err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Movies().UpdateMovie(ctx, id, store.MovieUpdate{
			Title:       in.Title,
			Description: in.Description,
			DirectorID:  in.DirectorID,
		}); err != nil {
			return err
		}
		if in.GenreIDs != nil {
			return tx.Movies().SetMovieGenres(ctx, id, *in.GenreIDs)
		}
		return nil
	})
	if err != nil {
		return domain.Movie{}, err
	}

	return s.Store.Movies().GetMovieByID(ctx, id)
}

func (s *MovieService) DeleteMovie(ctx context.Context, id int64) error {
	return s.Store.Movies().DeleteMovie(ctx, id)
}

// React toggles a like or dislike for one viewer. Reacting the same way
// twice clears the reaction; switching sides moves both counters in one
// transaction.
func (s *MovieService) React(ctx context.Context, movieID int64, userID string, like bool) (domain.Movie, error) {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Movies().GetMovieByID(ctx, movieID); err != nil {
			return err
		}

		prev, err := tx.Movies().GetReaction(ctx, movieID, userID)
		if err != nil {
			return err
		}

		var likeDelta, dislikeDelta int64
		switch {
		case prev == nil:
			if err := tx.Movies().UpsertReaction(ctx, domain.MovieReaction{
				MovieID: movieID, UserID: userID, IsLike: like,
			}); err != nil {
				return err
			}
			if like {
				likeDelta = 1
			} else {
				dislikeDelta = 1
			}

		case *prev == like:
			if err := tx.Movies().DeleteReaction(ctx, movieID, userID); err != nil {
				return err
			}
			if like {
				likeDelta = -1
			} else {
				dislikeDelta = -1
			}

		default:
			if err := tx.Movies().UpsertReaction(ctx, domain.MovieReaction{
				MovieID: movieID, UserID: userID, IsLike: like,
			}); err != nil {
				return err
			}
			if like {
				likeDelta, dislikeDelta = 1, -1
			} else {
				likeDelta, dislikeDelta = -1, 1
			}
		}

		return tx.Movies().AdjustReactionCounts(ctx, movieID, likeDelta, dislikeDelta)
	})
	if err != nil {
		return domain.Movie{}, err
	}

	return s.GetMovie(ctx, movieID, userID)
}

func (s *MovieService) validateRefs(ctx context.Context, directorID *int64, genreIDs []int64) error {
	if directorID != nil {
		if _, err := s.Store.Directors().GetDirectorByID(ctx, *directorID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("director %d: %w", *directorID, store.ErrNotFound)
			}
			return err
		}
	}
	if len(genreIDs) > 0 {
		genres, err := s.Store.Genres().GetGenresByIDs(ctx, genreIDs)
		if err != nil {
			return err
		}
		if len(genres) != len(dedupe(genreIDs)) {
			return ErrUnknownGenre
		}
	}
	return nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
