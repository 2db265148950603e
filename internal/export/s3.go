package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"feedbackdash/internal/config"
)

// Archiver uploads CSV exports to an S3 compatible bucket.
type Archiver struct {
	cli  *minio.Client
	conf config.S3Config
}

func NewArchiver(conf config.S3Config) (*Archiver, error) {
	cli, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyID, conf.SecretAccessKey, ""),
		Secure: conf.UseSSL,
		Region: conf.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client failed: %w", err)
	}
	return &Archiver{cli: cli, conf: conf}, nil
}

func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.cli.BucketExists(ctx, a.conf.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s failed: %w", a.conf.Bucket, err)
	}
	if exists {
		return nil
	}
	err = a.cli.MakeBucket(ctx, a.conf.Bucket, minio.MakeBucketOptions{Region: a.conf.Region})
	if err != nil {
		return fmt.Errorf("make bucket %s failed: %w", a.conf.Bucket, err)
	}
	return nil
}

// ObjectName names an export taken at t.
func ObjectName(prefix string, t time.Time) string {
	name := "submissions-" + t.UTC().Format("20060102T150405Z") + ".csv"
	return strings.TrimPrefix(path.Join(prefix, name), "/")
}

// Upload stores the local file and returns the object name.
func (a *Archiver) Upload(ctx context.Context, localPath string, at time.Time) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open local file failed: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("get file info failed: %w", err)
	}

	objectName := ObjectName(a.conf.Prefix, at)
	_, err = a.cli.PutObject(
		ctx,
		a.conf.Bucket,
		objectName,
		file,
		fileInfo.Size(),
		minio.PutObjectOptions{
			ContentType: contentType(localPath),
		},
	)
	if err != nil {
		return "", fmt.Errorf("put object to minio failed: %w", err)
	}
	return objectName, nil
}

func contentType(localPath string) string {
	switch strings.ToLower(path.Ext(localPath)) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	}
	return "application/octet-stream"
}
