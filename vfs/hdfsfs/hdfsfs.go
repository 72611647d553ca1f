// Package hdfsfs implements the storage provider contract on HDFS,
// using the native protocol client from github.com/colinmarc/hdfs.
package hdfsfs

import (
	"context"
	"io"
	"os"
	pathpkg "path"

	"github.com/colinmarc/hdfs/v2"
	"github.com/shogo82148/vfsbridge/vfs/driver"
)

// FileSystem implements driver.Provider on an HDFS cluster.
type FileSystem struct {
	client *hdfs.Client
}

var _ driver.Provider = (*FileSystem)(nil)

// NewFromClient wraps an already-connected HDFS client.
func NewFromClient(client *hdfs.Client) *FileSystem {
	return &FileSystem{client: client}
}

func (fsys *FileSystem) String() string { return "hdfs" }

// Close closes the connection to the namenode.
func (fsys *FileSystem) Close() error {
	return fsys.client.Close()
}

func fileType(fi os.FileInfo) driver.FileType {
	switch {
	case fi.IsDir():
		return driver.TypeDirectory
	case fi.Mode().IsRegular():
		return driver.TypeFile
	}
	return driver.TypeOther
}

func fileInfo(name string, fi os.FileInfo) driver.FileInfo {
	info := driver.FileInfo{
		Path:    name,
		Type:    fileType(fi),
		ModTime: fi.ModTime(),
	}
	if info.Type == driver.TypeFile {
		info.Size = fi.Size()
	}
	return info
}

// FileInfo looks up each path, reporting missing ones as TypeNotFound
// records.
func (fsys *FileSystem) FileInfo(ctx context.Context, paths []string) ([]driver.FileInfo, error) {
	infos := make([]driver.FileInfo, 0, len(paths))
	for _, p := range paths {
		fi, err := fsys.client.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				infos = append(infos, driver.FileInfo{Path: p, Type: driver.TypeNotFound})
				continue
			}
			return nil, err
		}
		infos = append(infos, fileInfo(p, fi))
	}
	return infos, nil
}

// List returns the immediate children of the directory.
func (fsys *FileSystem) List(ctx context.Context, dir string) ([]driver.FileInfo, error) {
	fis, err := fsys.client.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	infos := make([]driver.FileInfo, 0, len(fis))
	for _, fi := range fis {
		infos = append(infos, fileInfo(pathpkg.Join(dir, fi.Name()), fi))
	}
	return infos, nil
}

// OpenInput opens the file for reading. The returned stream supports
// seeking.
func (fsys *FileSystem) OpenInput(ctx context.Context, name string) (io.ReadCloser, error) {
	return fsys.client.Open(name)
}

// OpenOutput opens the file for writing. HDFS creates cannot overwrite,
// so an existing file is removed first.
func (fsys *FileSystem) OpenOutput(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := fsys.client.Remove(name); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return fsys.client.Create(name)
}

// Move moves src to dst. The namenode performs the rename as a single
// metadata operation.
func (fsys *FileSystem) Move(ctx context.Context, src, dst string) error {
	return fsys.client.Rename(src, dst)
}

// DeleteFile removes a single file.
func (fsys *FileSystem) DeleteFile(ctx context.Context, name string) error {
	return fsys.client.Remove(name)
}

// DeleteDir removes a directory and everything below it.
func (fsys *FileSystem) DeleteDir(ctx context.Context, name string) error {
	return fsys.client.RemoveAll(name)
}

// CreateDir creates the directory.
func (fsys *FileSystem) CreateDir(ctx context.Context, name string, recursive bool) error {
	if recursive {
		return fsys.client.MkdirAll(name, 0755)
	}
	return fsys.client.Mkdir(name, 0755)
}
