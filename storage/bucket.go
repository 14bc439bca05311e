package storage

import (
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Name        string `gorm:"type:varchar(200)"` // S3 bucket name for S3 buckets
	StorageType StorageType
	Path        string // Path on a drive or a prefix in an S3 bucket
	AuthDetails string // Authentication details. In case of S3 bucket - "key:secret"
	Region      string `gorm:"type:varchar(30)"`
	Endpoint    string `gorm:"type:varchar(300)"` // Optional S3-compatible endpoint
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	config := aws.NewConfig().WithRegion(b.Region)
	if parts := strings.SplitN(b.AuthDetails, ":", 2); len(parts) == 2 {
		config = config.WithCredentials(credentials.NewStaticCredentials(parts[0], parts[1], ""))
	}
	if b.Endpoint != "" {
		config = config.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	return s3.New(session.Must(session.NewSession(config)))
}

func (b *Bucket) CreateS3DownloadURI(path string, validFor time.Duration) string {
	request, _ := b.CreateSVC().GetObjectRequest(&s3.GetObjectInput{
		Bucket: &b.Name,
		Key:    aws.String(b.GetRemotePath(path)),
	})
	uri, err := request.Presign(validFor)
	if err != nil {
		return ""
	}
	return uri
}
