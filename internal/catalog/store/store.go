package store

import (
	"context"
	"errors"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/pkg/pagex"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it
// and expose sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	Movies() Movies
	Directors() Directors
	Genres() Genres

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST Commit() or Rollback() the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn errors
	// and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store: the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during registration and login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
}

// MovieListQuery shapes a cursor-paginated movie listing.
type MovieListQuery struct {
	// Title, when set, narrows results to a substring match.
	Title string

	// Cursor is the opaque continuation from the previous page. When set,
	// its embedded order overrides Order.
	Cursor string

	// Order is the fallback order spec ("column_ASC"/"column_DESC").
	Order []string

	// Take caps the page size.
	Take int

	// ViewerID, when set, annotates each movie with that user's reaction.
	ViewerID string
}

// MoviePage is one page of a movie listing.
type MoviePage struct {
	Movies []domain.Movie

	// NextCursor resumes after the last row; empty on the terminal page.
	NextCursor string

	// Count is the total number of rows matching the filter.
	Count int64
}

// MovieUpdate is a partial movie mutation; nil fields stay untouched.
type MovieUpdate struct {
	Title       *string
	Description *string
	DirectorID  *int64
}

type Movies interface {
	// ListMovies executes a cursor-paginated listing.
	ListMovies(ctx context.Context, q MovieListQuery) (MoviePage, error)

	// GetMovieByID returns the movie with detail, director and genres joined.
	GetMovieByID(ctx context.Context, id int64) (domain.Movie, error)

	// CreateMovie inserts the movie and its detail row, returning the new id.
	CreateMovie(ctx context.Context, m domain.Movie) (int64, error)

	// SetMovieGenres replaces the movie's genre links.
	SetMovieGenres(ctx context.Context, movieID int64, genreIDs []int64) error

	// UpdateMovie applies a partial update and bumps updated_at.
	UpdateMovie(ctx context.Context, id int64, upd MovieUpdate) error

	// DeleteMovie cascades to detail, genre links and reactions.
	DeleteMovie(ctx context.Context, id int64) error

	// GetReaction returns the viewer's reaction, nil when there is none.
	GetReaction(ctx context.Context, movieID int64, userID string) (*bool, error)

	// GetReactions bulk-fetches one viewer's reactions for a page of movies.
	GetReactions(ctx context.Context, movieIDs []int64, userID string) (map[int64]bool, error)

	// UpsertReaction records a like/dislike, replacing any previous one.
	UpsertReaction(ctx context.Context, r domain.MovieReaction) error

	// DeleteReaction clears a reaction.
	DeleteReaction(ctx context.Context, movieID int64, userID string) error

	// AdjustReactionCounts applies deltas to the denormalized counters.
	AdjustReactionCounts(ctx context.Context, movieID int64, likeDelta, dislikeDelta int64) error
}

type Directors interface {
	ListDirectors(ctx context.Context, page pagex.PageRequest) ([]domain.Director, error)
	GetDirectorByID(ctx context.Context, id int64) (domain.Director, error)
	CreateDirector(ctx context.Context, d domain.Director) (int64, error)
	UpdateDirector(ctx context.Context, d domain.Director) error
	DeleteDirector(ctx context.Context, id int64) error
}

type Genres interface {
	ListGenres(ctx context.Context, page pagex.PageRequest) ([]domain.Genre, error)
	GetGenreByID(ctx context.Context, id int64) (domain.Genre, error)

	// GetGenresByIDs resolves a set of ids, used to validate movie input.
	GetGenresByIDs(ctx context.Context, ids []int64) ([]domain.Genre, error)

	// CreateGenre inserts a genre; duplicate names yield ErrAlreadyExists.
	CreateGenre(ctx context.Context, g domain.Genre) (int64, error)
	UpdateGenre(ctx context.Context, g domain.Genre) error
	DeleteGenre(ctx context.Context, id int64) error
}
