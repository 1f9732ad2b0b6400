package files

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	CSV = ".csv"
)

type (
	// File - object that represents file in the file system.
	File struct {
		// Path - path of the file
		Path string
		// Name - name of the file
		Name string
		// Index - position of the file in the import, records are saved in this order
		Index int
	}

	// FileQueueInMem - in memory queue of File that are going to be imported.
	FileQueueInMem struct {
		data chan File
	}

	// FileCacheInMem - set of already collected File, so they would not be imported twice.
	// Not safe for concurrent usage.
	FileCacheInMem struct {
		// path -> File
		data map[string]File
	}
)

func (f File) String() string {
	return f.Path
}

func NewFileQueueInMem(size int) *FileQueueInMem {
	return &FileQueueInMem{
		data: make(chan File, size),
	}
}

func (q *FileQueueInMem) Put(file File) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unable to put file=%s into queue: (%v)", file.Path, r)
		}
	}()
	q.data <- file
	return err
}

func (q *FileQueueInMem) Data() (<-chan File, error) {
	return q.data, nil
}

func (q *FileQueueInMem) Close() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unable close files queue: (%v)", r)
		}
	}()
	close(q.data)
	return err
}

func NewFileCacheInMem() *FileCacheInMem {
	return &FileCacheInMem{
		data: make(map[string]File),
	}
}

func (c *FileCacheInMem) Put(file File) error {
	c.data[file.Path] = file
	return nil
}

// Get - gets File from cache by path
func (c *FileCacheInMem) Get(path string) (File, bool, error) {
	file, ok := c.data[path]
	return file, ok, nil
}

func (c *FileCacheInMem) Len() int {
	return len(c.data)
}

// Collect - resolves paths into the files to import. Directories contribute
// their .csv entries in name order, a file listed twice is imported once.
func Collect(paths []string) ([]File, error) {
	cache := NewFileCacheInMem()
	var files []File

	add := func(path string) error {
		path = filepath.Clean(path)
		if _, ok, err := cache.Get(path); ok || err != nil {
			return err
		}
		file := File{Path: path, Name: filepath.Base(path), Index: cache.Len()}
		if err := cache.Put(file); err != nil {
			return err
		}
		files = append(files, file)
		return nil
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("can't open path=%s: %w", path, err)
		}
		if !info.IsDir() {
			if err := add(path); err != nil {
				return nil, err
			}
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("can't open directory=%s: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != CSV {
				continue
			}
			if err := add(filepath.Join(path, entry.Name())); err != nil {
				return nil, err
			}
		}
	}
	return files, nil
}
