package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"feedbackapi/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultFolder is the bucket prefix for feedback images.
const DefaultFolder = "feedback"

// MaxImageSize is the per-file upload limit (20MB).
const MaxImageSize = 20 * 1024 * 1024

var (
	ErrInvalidImageType = errors.New("Invalid file type. Only JPEG, PNG, and WebP images are allowed.")
	ErrImageTooLarge    = errors.New("File size too large. Maximum size is 20MB per image.")
	ErrForeignImageURL  = errors.New("Image URL does not belong to the configured bucket.")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var (
	s3Client   *s3.Client
	presigner  *s3.PresignClient
	bucketName string
	bucketURL  string
)

// InitializeS3 builds the S3 client from the application configuration.
func InitializeS3(cfg *config.Config) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		),
	)
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}

	s3Client = s3.NewFromConfig(awsCfg)
	presigner = s3.NewPresignClient(s3Client)
	bucketName = cfg.S3Bucket
	bucketURL = strings.TrimSuffix(cfg.S3BucketURL, "/")

	return nil
}

// validateImage enforces the upload contract: sniffed content type must be
// JPEG, PNG, or WebP and the payload must not exceed MaxImageSize. The
// multipart Content-Type header is advisory and deliberately ignored.
func validateImage(size int64, data []byte) error {
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	if !allowedImageTypes[mimetype.Detect(data).String()] {
		return ErrInvalidImageType
	}
	return nil
}

// buildObjectKey generates a collision-resistant key under folder, keeping
// the original file extension.
func buildObjectKey(folder, filename string) string {
	return folder + "/" + uuid.NewString() + filepath.Ext(filename)
}

// UploadImage validates and stores a single image, returning its public URL.
func UploadImage(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	if err := validateImage(int64(len(data)), data); err != nil {
		return "", err
	}

	key := buildObjectKey(folder, file.Filename)

	_, err = s3Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimetype.Detect(data).String()),
	})
	if err != nil {
		return "", fmt.Errorf("upload image to S3: %w", err)
	}

	return bucketURL + "/" + key, nil
}

// UploadMultipleImages uploads every file concurrently. URLs are returned in
// input order; any single failure fails the whole call.
func UploadMultipleImages(files []*multipart.FileHeader, folder string) ([]string, error) {
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file *multipart.FileHeader) {
			defer wg.Done()
			urls[i], errs[i] = UploadImage(file, folder)
		}(i, file)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return urls, nil
}

// keyFromURL derives the object key from a public URL.
func keyFromURL(imageURL string) (string, error) {
	key, ok := strings.CutPrefix(imageURL, bucketURL+"/")
	if !ok || key == "" {
		return "", ErrForeignImageURL
	}
	return key, nil
}

// DeleteImage removes the object referenced by imageURL.
func DeleteImage(imageURL string) error {
	key, err := keyFromURL(imageURL)
	if err != nil {
		return err
	}

	_, err = s3Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete image from S3: %w", err)
	}

	return nil
}

// PresignedUploadURL issues a one-hour direct-upload URL so the client can
// PUT the binary to S3 without routing it through this server.
func PresignedUploadURL(fileName, contentType string) (string, error) {
	key := DefaultFolder + "/" + uuid.NewString() + "-" + fileName

	req, err := presigner.PresignPutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("presign upload URL: %w", err)
	}

	return req.URL, nil
}
