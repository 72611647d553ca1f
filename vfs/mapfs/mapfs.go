// Package mapfs provides a map-backed storage provider for use in
// tests and development.
//
// Missing paths are reported the way a remote filesystem client would
// report them, with a plain "<path> does not exist" error, so that the
// reclassification in vfs/bridge is exercised end to end.
package mapfs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shogo82148/vfsbridge/vfs/driver"
)

// New returns a new provider from the provided map.
// Map keys should be forward slash-separated pathnames
// and not contain a leading slash. Parent directories of every key are
// created implicitly.
func New(m map[string]string) *FileSystem {
	fsys := &FileSystem{
		files: map[string]file{},
		dirs:  map[string]bool{"": true},
	}
	now := time.Now()
	for name, data := range m {
		key := filename(name)
		fsys.files[key] = file{data: data, modTime: now}
		fsys.addParents(key)
	}
	return fsys
}

// FileSystem is the map based implementation of driver.Provider.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string]file
	dirs  map[string]bool
}

var _ driver.Provider = (*FileSystem)(nil)

type file struct {
	data    string
	modTime time.Time
}

func (fsys *FileSystem) String() string { return "mapfs" }

func filename(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func pathname(key string) string {
	return "/" + key
}

func parentKey(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[:i]
	}
	return ""
}

// addParents marks every ancestor of key as a directory.
// The caller must hold the lock.
func (fsys *FileSystem) addParents(key string) {
	for p := parentKey(key); p != ""; p = parentKey(p) {
		fsys.dirs[p] = true
	}
}

func (fsys *FileSystem) infoLocked(key string) driver.FileInfo {
	if f, ok := fsys.files[key]; ok {
		return driver.FileInfo{
			Path:    pathname(key),
			Type:    driver.TypeFile,
			Size:    int64(len(f.data)),
			ModTime: f.modTime,
		}
	}
	if fsys.dirs[key] {
		return driver.FileInfo{
			Path: pathname(key),
			Type: driver.TypeDirectory,
		}
	}
	return driver.FileInfo{
		Path: pathname(key),
		Type: driver.TypeNotFound,
	}
}

// FileInfo looks up each path, reporting missing ones as TypeNotFound
// records.
func (fsys *FileSystem) FileInfo(ctx context.Context, paths []string) ([]driver.FileInfo, error) {
	fsys.mu.RLock()
	defer fsys.mu.RUnlock()

	infos := make([]driver.FileInfo, 0, len(paths))
	for _, p := range paths {
		infos = append(infos, fsys.infoLocked(filename(p)))
	}
	return infos, nil
}

// List returns the immediate children of the directory in sorted order.
func (fsys *FileSystem) List(ctx context.Context, dir string) ([]driver.FileInfo, error) {
	fsys.mu.RLock()
	defer fsys.mu.RUnlock()

	key := filename(dir)
	if !fsys.dirs[key] {
		return nil, fmt.Errorf("mapfs: %s does not exist", pathname(key))
	}

	var children []string
	for k := range fsys.files {
		if parentKey(k) == key {
			children = append(children, k)
		}
	}
	for k := range fsys.dirs {
		if k != "" && parentKey(k) == key {
			children = append(children, k)
		}
	}
	sort.Strings(children)

	infos := make([]driver.FileInfo, 0, len(children))
	for _, k := range children {
		infos = append(infos, fsys.infoLocked(k))
	}
	return infos, nil
}

// OpenInput opens the file for reading.
func (fsys *FileSystem) OpenInput(ctx context.Context, name string) (io.ReadCloser, error) {
	fsys.mu.RLock()
	defer fsys.mu.RUnlock()

	key := filename(name)
	f, ok := fsys.files[key]
	if !ok {
		return nil, fmt.Errorf("mapfs: %s does not exist", pathname(key))
	}
	return nopCloser{strings.NewReader(f.data)}, nil
}

// OpenOutput opens the file for writing. The content becomes visible
// when the returned writer is closed. Missing parent directories are
// created implicitly, like on HDFS.
func (fsys *FileSystem) OpenOutput(ctx context.Context, name string) (io.WriteCloser, error) {
	key := filename(name)

	fsys.mu.Lock()
	defer fsys.mu.Unlock()
	if fsys.dirs[key] {
		return nil, &fs.PathError{Op: "open", Path: pathname(key), Err: fs.ErrInvalid}
	}
	return &mapWriter{fsys: fsys, key: key}, nil
}

// Move moves a file or a directory subtree.
func (fsys *FileSystem) Move(ctx context.Context, src, dst string) error {
	fsys.mu.Lock()
	defer fsys.mu.Unlock()

	skey := filename(src)
	dkey := filename(dst)
	if f, ok := fsys.files[skey]; ok {
		delete(fsys.files, skey)
		fsys.files[dkey] = f
		fsys.addParents(dkey)
		return nil
	}
	if fsys.dirs[skey] {
		fsys.moveDirLocked(skey, dkey)
		return nil
	}
	return fmt.Errorf("mapfs: %s does not exist", pathname(skey))
}

func (fsys *FileSystem) moveDirLocked(skey, dkey string) {
	delete(fsys.dirs, skey)
	fsys.dirs[dkey] = true
	fsys.addParents(dkey)
	for k, f := range fsys.files {
		if strings.HasPrefix(k, skey+"/") {
			delete(fsys.files, k)
			fsys.files[dkey+strings.TrimPrefix(k, skey)] = f
		}
	}
	for k := range fsys.dirs {
		if strings.HasPrefix(k, skey+"/") {
			delete(fsys.dirs, k)
			fsys.dirs[dkey+strings.TrimPrefix(k, skey)] = true
		}
	}
}

// DeleteFile removes a single file.
func (fsys *FileSystem) DeleteFile(ctx context.Context, name string) error {
	fsys.mu.Lock()
	defer fsys.mu.Unlock()

	key := filename(name)
	if _, ok := fsys.files[key]; !ok {
		return fmt.Errorf("mapfs: %s does not exist", pathname(key))
	}
	delete(fsys.files, key)
	return nil
}

// DeleteDir removes a directory and everything below it.
func (fsys *FileSystem) DeleteDir(ctx context.Context, name string) error {
	fsys.mu.Lock()
	defer fsys.mu.Unlock()

	key := filename(name)
	if !fsys.dirs[key] {
		return fmt.Errorf("mapfs: %s does not exist", pathname(key))
	}
	delete(fsys.dirs, key)
	for k := range fsys.files {
		if strings.HasPrefix(k, key+"/") {
			delete(fsys.files, k)
		}
	}
	for k := range fsys.dirs {
		if strings.HasPrefix(k, key+"/") {
			delete(fsys.dirs, k)
		}
	}
	return nil
}

// CreateDir creates the directory. Without recursive, the parent must
// already exist and the directory must not.
func (fsys *FileSystem) CreateDir(ctx context.Context, name string, recursive bool) error {
	fsys.mu.Lock()
	defer fsys.mu.Unlock()

	key := filename(name)
	if recursive {
		fsys.dirs[key] = true
		fsys.addParents(key)
		return nil
	}
	if fsys.dirs[key] {
		return &fs.PathError{Op: "mkdir", Path: pathname(key), Err: fs.ErrExist}
	}
	if _, ok := fsys.files[key]; ok {
		return &fs.PathError{Op: "mkdir", Path: pathname(key), Err: fs.ErrExist}
	}
	if p := parentKey(key); !fsys.dirs[p] {
		return fmt.Errorf("mapfs: %s does not exist", pathname(p))
	}
	fsys.dirs[key] = true
	return nil
}

type nopCloser struct {
	io.ReadSeeker
}

func (nc nopCloser) Close() error { return nil }

// mapWriter commits the written bytes into the map on Close.
type mapWriter struct {
	fsys   *FileSystem
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *mapWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fs.ErrClosed
	}
	return w.buf.Write(p)
}

func (w *mapWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.fsys.mu.Lock()
	defer w.fsys.mu.Unlock()
	w.fsys.files[w.key] = file{data: w.buf.String(), modTime: time.Now()}
	w.fsys.addParents(w.key)
	return nil
}
