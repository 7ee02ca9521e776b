package domain

import "time"

// Director of one or more catalog movies.
type Director struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DOB         string    `json:"dob"` // ISO date, not a timestamp
	Nationality string    `json:"nationality"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
