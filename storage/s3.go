package storage

import (
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const presignServeFor = time.Hour

type S3Storage struct {
	bucket   Bucket
	s3Client *s3.S3
}

func NewS3Storage(bucket *Bucket) StorageAPI {
	return &S3Storage{
		bucket:   *bucket,
		s3Client: bucket.CreateSVC(),
	}
}

func (s *S3Storage) GetBucket() *Bucket {
	return &s.bucket
}

type countingReader struct {
	reader io.Reader
	count  int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.count += int64(n)
	return n, err
}

func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	counter := &countingReader{reader: reader}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket: &s.bucket.Name,
		Key:    aws.String(s.bucket.GetRemotePath(path)),
		Body:   counter,
	})
	if err != nil {
		return 0, err
	}
	return counter.count, nil
}

func (s *S3Storage) Load(path string, writer io.Writer) (int64, error) {
	resp, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: &s.bucket.Name,
		Key:    aws.String(s.bucket.GetRemotePath(path)),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(writer, resp.Body)
}

// Serve redirects to a short-lived presigned URL instead of proxying the
// object body through this process.
func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	uri := s.bucket.CreateS3DownloadURI(path, presignServeFor)
	if uri == "" {
		http.Error(writer, "object unavailable", http.StatusInternalServerError)
		return
	}
	http.Redirect(writer, request, uri, http.StatusFound)
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.bucket.Name,
		Key:    aws.String(s.bucket.GetRemotePath(path)),
	})
	return err
}
