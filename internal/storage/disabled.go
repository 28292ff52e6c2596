package storage

import (
	"errors"
	"mime/multipart"
)

var ErrStorageDisabled = errors.New("image storage is not configured")

// DisabledUploader stands in when no S3 bucket is configured, so image
// endpoints fail cleanly instead of panicking on a nil client.
type DisabledUploader struct{}

func (DisabledUploader) Upload(string, multipart.File, string) (string, error) {
	return "", ErrStorageDisabled
}
