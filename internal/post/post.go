// Package post implements the media post pipeline: staging an upload to
// local disk, forwarding it to the object store, persisting the record,
// serving the aggregated feed, and owner-only deletion.
package post

import (
	"context"
	"errors"
	"strings"
	"time"
)

// FileType classifies the stored media.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

// ClassifyFileType derives the file type from the declared MIME type:
// video/* is a video, everything else an image.
func ClassifyFileType(contentType string) FileType {
	if strings.HasPrefix(contentType, "video/") {
		return FileTypeVideo
	}
	return FileTypeImage
}

// Post is a durable record describing one uploaded media item. A row
// exists only for uploads whose whole pipeline succeeded.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Caption   string    `json:"caption,omitempty"`
	URL       string    `json:"url"`
	FileType  FileType  `json:"fileType"`
	FileName  string    `json:"fileName"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedEntry pairs a post with its owner's email as resolved by the feed
// join. OwnerEmail is nil when the join could not resolve a user.
type FeedEntry struct {
	Post       Post
	OwnerEmail *string
}

// View is the feed representation of a post, annotated for the caller.
type View struct {
	Post
	OwnerEmail string `json:"ownerEmail"`
	IsOwner    bool   `json:"isOwner"`
}

// ErrNotFound is returned when the referenced post does not exist.
var ErrNotFound = errors.New("post not found")

// ErrForbidden is returned when the caller does not own the post.
var ErrForbidden = errors.New("only the owner may delete a post")

// ErrUnauthorized is returned when no authenticated caller is present.
var ErrUnauthorized = errors.New("unauthenticated")

// ErrUpload is returned when staging or the remote store fails. The
// proximate cause is wrapped alongside it.
var ErrUpload = errors.New("upload failed")

// Repository is the persistence contract for posts. Services depend on
// this interface; the pgx implementation lives in repository.go.
type Repository interface {
	// Insert persists the post in a single transaction and fills in the
	// storage-assigned creation timestamp.
	Insert(ctx context.Context, p *Post) error
	// ListFeed returns all posts joined with their owner's email, newest
	// first, insertion order breaking created_at ties. One query, no
	// per-post follow-ups.
	ListFeed(ctx context.Context) ([]FeedEntry, error)
	// GetByID returns ErrNotFound when no such post exists.
	GetByID(ctx context.Context, id string) (*Post, error)
	// Delete removes the row, returning ErrNotFound when it is already gone.
	Delete(ctx context.Context, id string) error
}
