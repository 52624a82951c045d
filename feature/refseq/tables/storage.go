package tables

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"refseq-assign/core/storage"

	"github.com/minio/minio-go/v7"
)

// LoadFromStorage reads a JSON snapshot from the bucket and indexes it.
func LoadFromStorage(ctx context.Context, client storage.Client, bucket, object string) (*Tables, error) {
	reader, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get tables snapshot: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse tables snapshot: %w", err)
	}
	return New(snap)
}

// Save writes the snapshot of t to the bucket.
func Save(ctx context.Context, client storage.Client, bucket, object string, t *Tables) error {
	data, err := json.Marshal(t.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal tables snapshot: %w", err)
	}

	_, err = client.PutObject(
		ctx,
		bucket,
		object,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to write tables snapshot: %w", err)
	}
	return nil
}
