package service

import (
	"testing"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/pkg/idx"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, s store.Store) (directorID, genreID int64) {
	t.Helper()
	ctx := t.Context()

	directorID, err := s.Directors().CreateDirector(ctx, domain.Director{
		Name: "Akira Kurosawa", DOB: "1910-03-23", Nationality: "JP",
	})
	require.NoError(t, err)

	genreID, err = s.Genres().CreateGenre(ctx, domain.Genre{Name: "Drama"})
	require.NoError(t, err)
	return directorID, genreID
}

func seedViewer(t *testing.T, s store.Store) string {
	t.Helper()
	id := idx.New().String()
	require.NoError(t, s.Users().CreateUser(t.Context(), domain.User{
		ID: id, Email: id + "@example.com", PasswordHash: "x", Role: domain.RoleUser,
	}))
	return id
}

func TestCreateMovieValidatesReferences(t *testing.T) {
	st := newTestStore(t)
	svc := &MovieService{Store: st}
	ctx := t.Context()

	directorID, genreID := seedCatalog(t, st)

	t.Run("unknown director", func(t *testing.T) {
		_, err := svc.CreateMovie(ctx, CreateMovieInput{
			Title: "Ghost Film", DirectorID: directorID + 99,
		})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown genre", func(t *testing.T) {
		_, err := svc.CreateMovie(ctx, CreateMovieInput{
			Title: "Ghost Film", DirectorID: directorID, GenreIDs: []int64{genreID + 99},
		})
		require.ErrorIs(t, err, ErrUnknownGenre)
	})

	t.Run("valid submission", func(t *testing.T) {
		m, err := svc.CreateMovie(ctx, CreateMovieInput{
			Title:       "Seven Samurai",
			Description: "a village hires ronin",
			DirectorID:  directorID,
			GenreIDs:    []int64{genreID},
		})
		require.NoError(t, err)
		require.Equal(t, "Seven Samurai", m.Title)
		require.NotNil(t, m.Director)
		require.Len(t, m.Genres, 1)
	})
}

func TestReactToggles(t *testing.T) {
	st := newTestStore(t)
	svc := &MovieService{Store: st}
	ctx := t.Context()

	directorID, _ := seedCatalog(t, st)
	viewer := seedViewer(t, st)

	movie, err := svc.CreateMovie(ctx, CreateMovieInput{
		Title: "Ikiru", DirectorID: directorID,
	})
	require.NoError(t, err)

	// Like.
	m, err := svc.React(ctx, movie.ID, viewer, true)
	require.NoError(t, err)
	require.EqualValues(t, 1, m.LikeCount)
	require.EqualValues(t, 0, m.DislikeCount)
	require.NotNil(t, m.LikeStatus)
	require.True(t, *m.LikeStatus)

	// Like again clears it.
	m, err = svc.React(ctx, movie.ID, viewer, true)
	require.NoError(t, err)
	require.EqualValues(t, 0, m.LikeCount)
	require.Nil(t, m.LikeStatus)

	// Like then switch to dislike.
	_, err = svc.React(ctx, movie.ID, viewer, true)
	require.NoError(t, err)
	m, err = svc.React(ctx, movie.ID, viewer, false)
	require.NoError(t, err)
	require.EqualValues(t, 0, m.LikeCount)
	require.EqualValues(t, 1, m.DislikeCount)
	require.NotNil(t, m.LikeStatus)
	require.False(t, *m.LikeStatus)

	t.Run("unknown movie", func(t *testing.T) {
		_, err := svc.React(ctx, movie.ID+99, viewer, true)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
