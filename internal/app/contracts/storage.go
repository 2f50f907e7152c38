package contracts

import (
	"context"
	"io"
)

type Storage interface {
	UploadObject(ctx context.Context, bucketName, objectName, contentType string, body io.Reader, size int64) (string, error)
}
