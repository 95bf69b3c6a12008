package api

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// spoolUpload writes a multipart file to a temp path so it can be handed to
// the uploader, which owns deleting it.
func spoolUpload(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "vidtube-upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
