package videos

import (
	"context"

	"github.com/google/uuid"

	"github.com/blazebomb/vidai/internal/db"
)

// Store persists videos. It is CRUD plumbing around the connection
// cache; all ordering and defaulting rules live here.
type Store struct {
	cache *db.Cache
}

func NewStore(cache *db.Cache) *Store {
	return &Store{cache: cache}
}

// List returns all videos, newest first. An empty library is an empty
// slice, not an error.
func (s *Store) List(ctx context.Context) ([]Video, error) {
	conn, err := s.cache.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT id, owner_id, title, description, video_url, thumbnail_url,
		       controls, transform_height, transform_width, transform_quality,
		       created_at, updated_at
		FROM videos
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Video{}
	for rows.Next() {
		var v Video
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Title, &v.Description,
			&v.VideoURL, &v.ThumbnailURL, &v.Controls,
			&v.Transformation.Height, &v.Transformation.Width,
			&v.Transformation.Quality, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}

	return list, rows.Err()
}

// Create persists a new video for the given owner, applying the fixed
// transformation frame and the quality/controls defaults.
func (s *Store) Create(ctx context.Context, ownerID string, v Video) (*Video, error) {
	conn, err := s.cache.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	v.ID = uuid.NewString()
	v.OwnerID = ownerID
	// The transformation frame is fixed; quality arrives already
	// defaulted by the handler and is stored as-is.
	v.Transformation.Height = DefaultHeight
	v.Transformation.Width = DefaultWidth

	err = conn.QueryRowContext(ctx, `
		INSERT INTO videos (
			id, owner_id, title, description, video_url, thumbnail_url,
			controls, transform_height, transform_width, transform_quality
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`,
		v.ID, v.OwnerID, v.Title, v.Description, v.VideoURL, v.ThumbnailURL,
		v.Controls, v.Transformation.Height, v.Transformation.Width,
		v.Transformation.Quality,
	).Scan(&v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return &v, nil
}
