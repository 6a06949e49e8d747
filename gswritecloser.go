package gwaspower

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// SplitGoogleStoragePath splits gs://bucket/path/to/object into its bucket
// and object names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	if !strings.HasPrefix(path, "gs://") {
		return "", "", fmt.Errorf("%s is not a Google Storage path", path)
	}

	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// CreateMaybeGoogleStorage opens path for writing. Paths beginning with gs://
// are written to Google Storage through client, and become visible when the
// writer is closed. Any other path is written to a temporary file in the same
// directory that replaces path only if every write and the final Close
// succeed. Cancel ctx before Close to abandon a partially written output.
func CreateMaybeGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.WriteCloser, error) {
	if strings.HasPrefix(path, "gs://") {
		if client == nil {
			return nil, pfx.Err(fmt.Errorf("%s: no Google Storage client was provided", path))
		}

		bucketName, objectName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		return client.Bucket(bucketName).Object(objectName).NewWriter(ctx), nil
	}

	f, err := createAtomicFile(ctx, path)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// atomicFile stages writes in a temporary file and renames it over the
// destination on Close. A failed write or a canceled context poisons the
// file, so that Close discards it instead.
type atomicFile struct {
	ctx  context.Context
	f    *os.File
	dest string
	err  error
}

func createAtomicFile(ctx context.Context, dest string) (*atomicFile, error) {
	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return nil, pfx.Err(err)
	}

	// CreateTemp is owner-only; match what os.Create would have produced.
	if err := f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, pfx.Err(err)
	}

	return &atomicFile{ctx: ctx, f: f, dest: dest}, nil
}

func (a *atomicFile) Write(p []byte) (int, error) {
	if a.err != nil {
		return 0, a.err
	}

	n, err := a.f.Write(p)
	if err != nil {
		a.err = err
	}

	return n, err
}

func (a *atomicFile) Close() error {
	closeErr := a.f.Close()

	if a.err == nil {
		a.err = closeErr
	}
	if a.err == nil {
		a.err = a.ctx.Err()
	}

	if a.err != nil {
		os.Remove(a.f.Name())
		return fmt.Errorf("not writing %s: %w", a.dest, a.err)
	}

	if err := os.Rename(a.f.Name(), a.dest); err != nil {
		os.Remove(a.f.Name())
		return pfx.Err(err)
	}

	return nil
}
