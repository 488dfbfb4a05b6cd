package gcsclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/basaam0/receipt-roundup/internal/errs"
)

// Max upload size of 5 MiB, enforced before a receipt is ever analyzed.
const maxUploadSizeBytes = 5 * 1024 * 1024

const uploadURLExpiry = 15 * time.Minute

// Matches JPEG image filenames.
var validFilename = regexp.MustCompile(`(?i)^\S+\.jpe?g$`)

// Adapter is the image store: it hands out signed upload URLs, validates
// finished uploads and streams stored objects back out. Receipt images live
// under receipts/ with generated names; the original filename only decides
// whether the upload is accepted at all.
type Adapter struct {
	bucket *storage.BucketHandle
	log    *slog.Logger
}

func NewAdapter(client *storage.Client, bucketName string, log *slog.Logger) *Adapter {
	return &Adapter{
		bucket: client.Bucket(bucketName),
		log:    log,
	}
}

// CreateUploadURL returns a V4 signed PUT URL for a new receipt image and
// the object reference the caller must echo back when finalizing the upload.
// Non-JPEG filenames are rejected here, before any bytes move.
func (a *Adapter) CreateUploadURL(ctx context.Context, filename string) (uploadURL, imageRef string, err error) {
	if !validFilename.MatchString(filename) {
		return "", "", errs.NewValidationError("No valid JPEG file uploaded.")
	}

	imageRef = "receipts/" + uuid.New().String() + path.Ext(filename)
	uploadURL, err = a.bucket.SignedURL(imageRef, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      "PUT",
		Expires:     time.Now().Add(uploadURLExpiry),
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", "", errs.NewStorageUnavailableError("sign", "failed to create upload URL", err)
	}

	return uploadURL, imageRef, nil
}

// ValidateUpload checks that the uploaded object exists and is a plausible
// receipt image (non-empty, within the size cap). Objects failing the checks
// are deleted so they cannot be finalized later.
func (a *Adapter) ValidateUpload(ctx context.Context, imageRef string) error {
	attrs, err := a.bucket.Object(imageRef).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return errs.NewNotFoundError("uploaded image not found")
	}
	if err != nil {
		return errs.NewStorageUnavailableError("stat", "failed to read uploaded image attributes", err)
	}

	if attrs.Size == 0 || attrs.Size > maxUploadSizeBytes {
		if delErr := a.bucket.Object(imageRef).Delete(ctx); delErr != nil {
			a.log.Warn("failed to delete rejected upload", "image_ref", imageRef, "error", delErr)
		}
		return errs.NewValidationError(fmt.Sprintf("uploaded image size %d is out of bounds", attrs.Size))
	}

	return nil
}

// Open streams a stored receipt image.
func (a *Adapter) Open(ctx context.Context, imageRef string) (io.ReadCloser, error) {
	r, err := a.bucket.Object(imageRef).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, errs.NewNotFoundError("image not found")
	}
	if err != nil {
		return nil, errs.NewStorageUnavailableError("read", "failed to open image", err)
	}
	return r, nil
}
