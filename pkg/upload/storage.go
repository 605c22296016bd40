package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
)

// ErrExists is returned by a Storage when name is already taken.
var ErrExists = errors.New("upload: name already taken")

// Storage persists an accepted file and returns the public path or URL it is served from.
type Storage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// LocalStorage writes files into Dir; they are served under URLPrefix.
type LocalStorage struct {
	Dir       string
	URLPrefix string
}

func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (s *LocalStorage) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	f, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrExists
		}
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path.Join(s.URLPrefix, name), nil
}

// GCSStorage uploads into a bucket under Prefix and returns the public object URL.
type GCSStorage struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func NewGCSStorage(client *storage.Client, bucket, prefix string) *GCSStorage {
	return &GCSStorage{Client: client, Bucket: bucket, Prefix: prefix}
}

func (s *GCSStorage) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if s.Client == nil || s.Bucket == "" {
		return "", errors.New("gcs not configured")
	}
	url, err := helpers.UploadObject(ctx, s.Client, s.Bucket, path.Join(s.Prefix, name), contentType, r)
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
		return "", ErrExists
	}
	return url, err
}
