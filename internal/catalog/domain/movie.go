package domain

import "time"

// Movie is a catalog entry. Description lives in a separate detail row but
// is exposed flat. LikeStatus is a per-viewer annotation: nil when the
// request is anonymous or the viewer has not reacted.
type Movie struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DirectorID   int64     `json:"-"`
	Director     *Director `json:"director,omitempty"`
	Genres       []Genre   `json:"genres,omitempty"`
	LikeCount    int64     `json:"likeCount"`
	DislikeCount int64     `json:"dislikeCount"`
	LikeStatus   *bool     `json:"likeStatus,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MovieReaction records a user's like (true) or dislike (false) of a movie.
type MovieReaction struct {
	MovieID int64
	UserID  string
	IsLike  bool
}
