package storage

import (
	"io"
	"log"
	"net/http"

	"catalog/config"
	"catalog/db"
)

type StorageAPI interface {
	GetBucket() *Bucket
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
}

var cachedStorage []StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	var buckets []Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.DEFAULT_BUCKET_DIR != "" {
		bucket := Bucket{
			Name:        "default",
			StorageType: StorageTypeFile,
			Path:        config.DEFAULT_BUCKET_DIR,
		}
		if err := db.Instance.Create(&bucket).Error; err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Storage buckets found: %d\n", len(buckets))
	cachedStorage = []StorageAPI{}
	for i := range buckets {
		if buckets[i].StorageType == StorageTypeS3 {
			cachedStorage = append(cachedStorage, NewS3Storage(&buckets[i]))
		} else {
			cachedStorage = append(cachedStorage, NewDiskStorage(&buckets[i]))
		}
	}
}

// GetDefaultStorage prefers a local disk bucket and falls back to the
// first configured one. Returns nil when no bucket is configured.
func GetDefaultStorage() StorageAPI {
	for _, s := range cachedStorage {
		if !s.GetBucket().IsS3() {
			return s
		}
	}
	for _, s := range cachedStorage {
		return s
	}
	return nil
}
