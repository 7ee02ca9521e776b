package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/pkg/pagex"
)

type moviesRepo struct {
	q querier
}

// movieSortColumns is the allow-list of client-sortable columns. Anything
// outside it is rejected by pagex before reaching the query string.
var movieSortColumns = map[string]string{
	"id":        "m.id",
	"title":     "m.title",
	"likeCount": "m.like_count",
}

const movieColumns = `m.id, m.title, IFNULL(md.description, ''), m.director_id,
	m.like_count, m.dislike_count, m.created_at, m.updated_at`

const movieFrom = ` FROM movies m LEFT JOIN movie_details md ON md.movie_id = m.id`

func (r *moviesRepo) ListMovies(ctx context.Context, q store.MovieListQuery) (store.MoviePage, error) {
	take := q.Take
	if take <= 0 {
		take = pagex.DefaultTake
	}
	order := q.Order
	if len(order) == 0 {
		order = []string{"id_ASC"}
	}

	pq, err := pagex.Build(q.Cursor, order, take, movieSortColumns)
	if err != nil {
		return store.MoviePage{}, err
	}

	var (
		filter []string
		args   []any
	)
	if q.Title != "" {
		filter = append(filter, `m.title LIKE '%' || ? || '%'`)
		args = append(args, q.Title)
	}

	// Total count reflects the filter only, never the cursor position.
	var count int64
	countSQL := `SELECT COUNT(*) FROM movies m`
	if len(filter) > 0 {
		countSQL += ` WHERE ` + strings.Join(filter, " AND ")
	}
	if err := r.q.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return store.MoviePage{}, err
	}

	if pq.Where != "" {
		filter = append(filter, pq.Where)
		args = append(args, pq.Args...)
	}

	listSQL := `SELECT ` + movieColumns + movieFrom
	if len(filter) > 0 {
		listSQL += ` WHERE ` + strings.Join(filter, " AND ")
	}
	listSQL += ` ORDER BY ` + pq.OrderBy + ` LIMIT ?`
	args = append(args, pq.Limit)

	rows, err := r.q.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return store.MoviePage{}, err
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return store.MoviePage{}, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return store.MoviePage{}, err
	}

	if err := r.hydrate(ctx, movies, q.ViewerID); err != nil {
		return store.MoviePage{}, err
	}

	page := store.MoviePage{Movies: movies, Count: count}
	if len(movies) == take {
		last := movies[len(movies)-1]
		values := make(map[string]any, len(pq.Clauses))
		for _, c := range pq.Clauses {
			switch c.Column {
			case "id":
				values[c.Column] = last.ID
			case "title":
				values[c.Column] = last.Title
			case "likeCount":
				values[c.Column] = last.LikeCount
			}
		}
		page.NextCursor = pagex.EncodeCursor(values, pq.Order)
	}
	return page, nil
}

func (r *moviesRepo) GetMovieByID(ctx context.Context, id int64) (domain.Movie, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+movieColumns+movieFrom+` WHERE m.id = ?`, id)
	m, err := scanMovie(row)
	if err != nil {
		return domain.Movie{}, err
	}

	one := []domain.Movie{m}
	if err := r.hydrate(ctx, one, ""); err != nil {
		return domain.Movie{}, err
	}
	return one[0], nil
}

func (r *moviesRepo) CreateMovie(ctx context.Context, m domain.Movie) (int64, error) {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO movies (title, director_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		m.Title, m.DirectorID, now, now)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = r.q.ExecContext(ctx,
		`INSERT INTO movie_details (movie_id, description) VALUES (?, ?)`,
		id, m.Description)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *moviesRepo) SetMovieGenres(ctx context.Context, movieID int64, genreIDs []int64) error {
	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM movie_genres WHERE movie_id = ?`, movieID); err != nil {
		return err
	}
	for _, gid := range genreIDs {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?)`,
			movieID, gid); err != nil {
			return err
		}
	}
	return nil
}

func (r *moviesRepo) UpdateMovie(ctx context.Context, id int64, upd store.MovieUpdate) error {
	sets := []string{`updated_at = ?`}
	args := []any{time.Now().UTC()}

	if upd.Title != nil {
		sets = append(sets, `title = ?`)
		args = append(args, *upd.Title)
	}
	if upd.DirectorID != nil {
		sets = append(sets, `director_id = ?`)
		args = append(args, *upd.DirectorID)
	}
	args = append(args, id)

	res, err := r.q.ExecContext(ctx,
		`UPDATE movies SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return store.ErrNotFound
	}

	if upd.Description != nil {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO movie_details (movie_id, description) VALUES (?, ?)
			 ON CONFLICT (movie_id) DO UPDATE SET description = excluded.description`,
			id, *upd.Description)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *moviesRepo) DeleteMovie(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *moviesRepo) GetReaction(ctx context.Context, movieID int64, userID string) (*bool, error) {
	var isLike bool
	err := r.q.QueryRowContext(ctx,
		`SELECT is_like FROM movie_user_likes WHERE movie_id = ? AND user_id = ?`,
		movieID, userID).Scan(&isLike)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &isLike, nil
}

func (r *moviesRepo) GetReactions(ctx context.Context, movieIDs []int64, userID string) (map[int64]bool, error) {
	out := make(map[int64]bool, len(movieIDs))
	if len(movieIDs) == 0 {
		return out, nil
	}

	args := make([]any, 0, len(movieIDs)+1)
	for _, id := range movieIDs {
		args = append(args, id)
	}
	args = append(args, userID)

	rows, err := r.q.QueryContext(ctx,
		`SELECT movie_id, is_like FROM movie_user_likes
		 WHERE movie_id IN (`+placeholders(len(movieIDs))+`) AND user_id = ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     int64
			isLike bool
		)
		if err := rows.Scan(&id, &isLike); err != nil {
			return nil, err
		}
		out[id] = isLike
	}
	return out, rows.Err()
}

func (r *moviesRepo) UpsertReaction(ctx context.Context, reaction domain.MovieReaction) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO movie_user_likes (movie_id, user_id, is_like, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (movie_id, user_id) DO UPDATE SET is_like = excluded.is_like`,
		reaction.MovieID, reaction.UserID, reaction.IsLike, time.Now().UTC())
	return err
}

func (r *moviesRepo) DeleteReaction(ctx context.Context, movieID int64, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM movie_user_likes WHERE movie_id = ? AND user_id = ?`,
		movieID, userID)
	return err
}

func (r *moviesRepo) AdjustReactionCounts(ctx context.Context, movieID int64, likeDelta, dislikeDelta int64) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE movies SET like_count = like_count + ?, dislike_count = dislike_count + ?
		 WHERE id = ?`,
		likeDelta, dislikeDelta, movieID)
	return err
}

// hydrate attaches directors, genres and (optionally) the viewer's reaction
// to an already-scanned page of movies.
func (r *moviesRepo) hydrate(ctx context.Context, movies []domain.Movie, viewerID string) error {
	if len(movies) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(movies))
	directorIDs := make(map[int64]struct{}, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
		directorIDs[m.DirectorID] = struct{}{}
	}

	directors, err := r.directorsByID(ctx, directorIDs)
	if err != nil {
		return err
	}
	genres, err := r.genresByMovie(ctx, ids)
	if err != nil {
		return err
	}

	var reactions map[int64]bool
	if viewerID != "" {
		reactions, err = r.GetReactions(ctx, ids, viewerID)
		if err != nil {
			return err
		}
	}

	for i := range movies {
		if d, ok := directors[movies[i].DirectorID]; ok {
			dd := d
			movies[i].Director = &dd
		}
		movies[i].Genres = genres[movies[i].ID]
		if reactions != nil {
			if isLike, ok := reactions[movies[i].ID]; ok {
				v := isLike
				movies[i].LikeStatus = &v
			}
		}
	}
	return nil
}

func (r *moviesRepo) directorsByID(ctx context.Context, idSet map[int64]struct{}) (map[int64]domain.Director, error) {
	if len(idSet) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(idSet))
	for id := range idSet {
		args = append(args, id)
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+directorColumns+` FROM directors WHERE id IN (`+placeholders(len(args))+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]domain.Director, len(idSet))
	for rows.Next() {
		d, err := scanDirector(rows)
		if err != nil {
			return nil, err
		}
		out[d.ID] = d
	}
	return out, rows.Err()
}

func (r *moviesRepo) genresByMovie(ctx context.Context, movieIDs []int64) (map[int64][]domain.Genre, error) {
	args := make([]any, 0, len(movieIDs))
	for _, id := range movieIDs {
		args = append(args, id)
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT mg.movie_id, `+genreColumns(`g`)+`
		 FROM movie_genres mg JOIN genres g ON g.id = mg.genre_id
		 WHERE mg.movie_id IN (`+placeholders(len(args))+`)
		 ORDER BY g.name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]domain.Genre)
	for rows.Next() {
		var (
			movieID int64
			g       domain.Genre
		)
		if err := rows.Scan(&movieID, &g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out[movieID] = append(out[movieID], g)
	}
	return out, rows.Err()
}

func scanMovie(row scanner) (domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.DirectorID,
		&m.LikeCount, &m.DislikeCount, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Movie{}, mapNotFound(err)
	}
	return m, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
