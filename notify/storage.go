package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cloud.google.com/go/storage"
)

// Uploader streams a finished game's replay bytes into a Cloud Storage
// bucket, grounded on downloadAndUploadFile (bucket.go), generalized to
// accept the replay bytes directly instead of re-downloading them from
// the hosted exporter the teacher depended on.
type Uploader struct {
	BucketName string
}

// Upload writes data to "<gameID>.gif" in the configured bucket and
// returns its public object name.
func (u Uploader) Upload(ctx context.Context, gameID string, data io.Reader) (string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("notify: create storage client: %w", err)
	}
	defer client.Close()

	objectName := fmt.Sprintf("%s.gif", gameID)
	object := client.Bucket(u.BucketName).Object(objectName)
	writer := object.NewWriter(ctx)

	if _, err := io.Copy(writer, data); err != nil {
		return "", fmt.Errorf("notify: copy replay to bucket: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("notify: close bucket writer: %w", err)
	}

	slog.Debug("replay uploaded", "game_id", gameID, "bucket", u.BucketName)
	return objectName, nil
}
