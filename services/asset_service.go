package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/kurin/blazer/b2"
)

// AssetService stores uploaded content files (videos, PDFs, worksheets) in a
// Backblaze B2 bucket and hands out signed URLs. The bucket is private; the
// library records only keep the object name as file_url.
type AssetService struct {
	client     *b2.Client
	bucketName string
	bucket     *b2.Bucket
}

type AssetUploadResult struct {
	ObjectName  string `json:"object_name"`
	FileName    string `json:"file_name"`
	DownloadURL string `json:"download_url"`
	Size        int64  `json:"size"`
	SHA1        string `json:"sha1"`
}

func NewAssetService(keyID, applicationKey, bucketName string) (*AssetService, error) {
	ctx := context.Background()

	client, err := b2.NewClient(ctx, keyID, applicationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create B2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", bucketName, err)
	}

	return &AssetService{
		client:     client,
		bucketName: bucketName,
		bucket:     bucket,
	}, nil
}

// UploadAsset streams a multipart file into the bucket under
// library/<uploader>/<filename> and returns the object name plus a signed
// download URL.
func (s *AssetService) UploadAsset(ctx context.Context, file multipart.File, filename, uploaderID string) (*AssetUploadResult, error) {
	objectName := fmt.Sprintf("library/%s/%s", uploaderID, filename)

	obj := s.bucket.Object(objectName)
	writer := obj.NewWriter(ctx)

	hasher := sha1.New()
	multiWriter := io.MultiWriter(writer, hasher)

	written, err := io.Copy(multiWriter, file)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to upload asset to B2: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close B2 writer: %w", err)
	}

	downloadURL, err := s.GetDownloadURL(ctx, objectName, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &AssetUploadResult{
		ObjectName:  objectName,
		FileName:    filename,
		DownloadURL: downloadURL,
		Size:        written,
		SHA1:        hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// GetDownloadURL generates a signed download URL for the private bucket.
func (s *AssetService) GetDownloadURL(ctx context.Context, objectName string, duration time.Duration) (string, error) {
	obj := s.bucket.Object(objectName)

	urlObj, err := obj.AuthURL(ctx, duration, "GET")
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return urlObj.String(), nil
}

// DeleteAsset removes the object from the bucket.
func (s *AssetService) DeleteAsset(ctx context.Context, objectName string) error {
	obj := s.bucket.Object(objectName)

	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete asset from B2: %w", err)
	}
	return nil
}
