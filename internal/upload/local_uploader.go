package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalUploader hosts media on local disk under basePath and serves it under
// baseURL + "/media/".
type LocalUploader struct {
	basePath string
	baseURL  string
}

func NewLocalUploader(basePath, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalUploader{basePath: basePath, baseURL: baseURL}, nil
}

func (u *LocalUploader) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", ErrNoFile
	}
	// The temp file is removed whether or not the copy succeeds.
	defer os.Remove(localPath)

	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectName := uuid.New().String() + filepath.Ext(localPath)
	dstPath := filepath.Join(u.basePath, objectName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", err
	}

	return u.baseURL + "/media/" + objectName, nil
}

// Dir returns the directory whose contents should be served at /media/*.
func (u *LocalUploader) Dir() string {
	return u.basePath
}
