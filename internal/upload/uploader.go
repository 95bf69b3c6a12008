package upload

import (
	"context"
	"errors"
)

var ErrNoFile = errors.New("no file to upload")

// Uploader moves a locally spooled file to hosted storage and returns its
// public URL. The local file is always removed, even when the upload fails.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
