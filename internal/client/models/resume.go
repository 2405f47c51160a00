package models

import "time"

// Resume is one uploadable document owned by the signed-in user. At most one
// resume per user carries IsActive=true; the backend enforces exclusivity,
// the client only ever reconciles against it.
type Resume struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FileURL   string    `json:"file_path"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
