// Package drive talks to the S3-compatible object store where the
// recorder app uploads voice memos. Folders map to object-key prefixes;
// the reserved folder name "root" addresses the bucket root.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/voice-diary/voicediary/internal/config"
)

// Object is one downloadable file in the bucket.
type Object struct {
	Key  string
	Name string
	Size int64
}

// Client lists, fetches and deletes objects on the drive.
type Client interface {
	ListFolder(ctx context.Context, folder string) ([]Object, error)
	Download(ctx context.Context, key, localPath string) error
	Delete(ctx context.Context, key string) error
}

type s3Drive struct {
	client *minio.Client
	bucket string
}

// NewClient connects to the endpoint named in the drive config.
// Credentials come from the config fields when set, otherwise from the
// credentials file next to the rest of the configuration.
func NewClient(cfg *config.DriveConfig) (Client, error) {
	creds, err := ResolveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKey, creds.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	return &s3Drive{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// ListFolder returns the files directly under a folder, without
// descending into subfolders. Folder placeholder keys are skipped.
func (d *s3Drive) ListFolder(ctx context.Context, folder string) ([]Object, error) {
	prefix := ""
	if folder != "" && folder != "root" {
		prefix = strings.TrimSuffix(folder, "/") + "/"
	}

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}

	objects := make([]Object, 0)
	for info := range d.client.ListObjects(ctx, d.bucket, opts) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list folder %q: %w", folder, info.Err)
		}
		if strings.HasSuffix(info.Key, "/") {
			continue
		}
		objects = append(objects, Object{
			Key:  info.Key,
			Name: path.Base(info.Key),
			Size: info.Size,
		})
	}

	return objects, nil
}

func (d *s3Drive) Download(ctx context.Context, key, localPath string) error {
	if err := d.client.FGetObject(ctx, d.bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("failed to download %s: %w", key, err)
	}
	return nil
}

func (d *s3Drive) Delete(ctx context.Context, key string) error {
	if err := d.client.RemoveObject(ctx, d.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Credentials is the key pair stored in the credentials file.
type Credentials struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

const credentialsHelp = `To create a credentials file:
  1. Open your storage provider's console and create an access key for the diary bucket
  2. Save the key pair as JSON: {"access_key": "...", "secret_key": "..."}
  3. Place the file at the path configured under drive.credentials_file`

// ResolveCredentials returns the key pair from the config when both
// halves are present, otherwise from the credentials file.
func ResolveCredentials(cfg *config.DriveConfig) (Credentials, error) {
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		return Credentials{AccessKey: cfg.AccessKey, SecretKey: cfg.SecretKey}, nil
	}

	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, fmt.Errorf("credentials file not found at %s\n%s", cfg.CredentialsFile, credentialsHelp)
		}
		return Credentials{}, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials file %s: %w", cfg.CredentialsFile, err)
	}
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return Credentials{}, fmt.Errorf("credentials file %s is missing access_key or secret_key", cfg.CredentialsFile)
	}

	return creds, nil
}
