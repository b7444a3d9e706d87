// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider.
package storage

import "context"

// UploadResult describes a successfully stored object.
type UploadResult struct {
	// URL is the durable, browser-accessible location of the object.
	URL string
	// Key is the canonical object name assigned by the store.
	Key string
}

// BlobStore is the interface for uploading and removing media objects.
type BlobStore interface {
	// Upload stores the file at localPath under a collision-free key derived
	// from originalName. Anything short of a confirmed success is an error;
	// there are no partial results.
	Upload(ctx context.Context, localPath, originalName, contentType string) (*UploadResult, error)
	// Remove deletes an object identified by key.
	Remove(ctx context.Context, key string) error
}
