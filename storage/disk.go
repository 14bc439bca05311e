package storage

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

type DiskStorage struct {
	bucket Bucket
	// dirs remembers directories already created so Save skips the MkdirAll
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(bucket *Bucket) StorageAPI {
	return &DiskStorage{
		bucket: *bucket,
		dirs:   make(map[string]bool, 10),
	}
}

func (s *DiskStorage) GetBucket() *Bucket {
	return &s.bucket
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	s.dirs[dir] = true
	return os.MkdirAll(dir, 0777)
}

func (s *DiskStorage) getFullPath(path string) string {
	return s.bucket.Path + "/" + path
}

func (s *DiskStorage) Save(path string, reader io.Reader) (int64, error) {
	fileName := s.getFullPath(path)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	file.Close()
	return result, err
}

func (s *DiskStorage) Load(path string, writer io.Writer) (int64, error) {
	file, err := os.Open(s.getFullPath(path))
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(writer, file)
	file.Close()
	return result, err
}

func (s *DiskStorage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	http.ServeFile(writer, request, s.getFullPath(path))
}

func (s *DiskStorage) Delete(path string) error {
	return os.Remove(s.getFullPath(path))
}
