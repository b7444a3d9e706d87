package post

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pixelfeed/service/internal/staging"
	"github.com/pixelfeed/service/internal/storage"
	"github.com/pixelfeed/service/internal/worker"
)

// unknownOwner is shown when the feed join cannot resolve the uploader.
const unknownOwner = "Unknown"

// Service orchestrates the upload pipeline, the feed query, and deletion.
type Service struct {
	repo  Repository
	store storage.BlobStore
	area  *staging.Area
	pool  *worker.Pool
}

// NewService creates a new post Service.
func NewService(repo Repository, store storage.BlobStore, area *staging.Area, pool *worker.Pool) *Service {
	return &Service{repo: repo, store: store, area: area, pool: pool}
}

// Upload runs the pipeline for one incoming stream: stage to local disk,
// forward to the object store, persist the record. The two blocking steps
// run as a single worker-pool job so the request goroutine is never tied
// up by disk or network I/O, and the staged file is removed on every exit
// path of that job, including caller disconnect. A post row is written
// only after the remote store has confirmed success.
func (s *Service) Upload(ctx context.Context, userID string, file io.Reader, originalName, contentType, caption string) (*Post, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	resCh := make(chan *storage.UploadResult, 1)
	err := s.pool.Do(ctx, func() error {
		staged, err := s.area.Stage(file, filepath.Ext(originalName))
		if err != nil {
			return err
		}
		defer staged.Cleanup()

		res, err := s.store.Upload(ctx, staged.Path, originalName, contentType)
		if err != nil {
			return err
		}
		resCh <- res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	res := <-resCh

	p := &Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Caption:   caption,
		URL:       res.URL,
		FileType:  ClassifyFileType(contentType),
		FileName:  res.Key,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		// The stored object is orphaned here; reconciling orphans is a
		// background concern, not part of the request path.
		return nil, fmt.Errorf("persist post: %w", err)
	}
	return p, nil
}

// Feed returns every post, newest first, annotated with the owner's email
// and whether the caller owns it.
func (s *Service) Feed(ctx context.Context, callerID string) ([]View, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}

	entries, err := s.repo.ListFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}

	views := make([]View, 0, len(entries))
	for _, e := range entries {
		owner := unknownOwner
		if e.OwnerEmail != nil {
			owner = *e.OwnerEmail
		}
		views = append(views, View{
			Post:       e.Post,
			OwnerEmail: owner,
			IsOwner:    e.Post.UserID == callerID,
		})
	}
	return views, nil
}

// Delete removes a post after verifying the caller owns it.
func (s *Service) Delete(ctx context.Context, callerID, postID string) error {
	if callerID == "" {
		return ErrUnauthorized
	}

	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find post: %w", err)
	}

	if p.UserID != callerID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		// A row deleted between lookup and delete is the outcome the
		// caller asked for.
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
