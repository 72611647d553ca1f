package vfs

import (
	"context"
	"io"
	"io/fs"
	"os"
)

// Null is a null file system.
// All read operations fail with fs.ErrNotExist,
// and all write operations succeed, but no effect.
var Null FileSystem = null{}

type null struct{}

func notExist(op, name string) error {
	return &fs.PathError{
		Op:   op,
		Path: name,
		Err:  fs.ErrNotExist,
	}
}

func (null) List(ctx context.Context, name string) ([]Entry, error) {
	if name == "" || name == "/" {
		return []Entry{}, nil
	}
	return nil, notExist("list", name)
}

func (null) ListNames(ctx context.Context, name string) ([]string, error) {
	if name == "" || name == "/" {
		return []string{}, nil
	}
	return nil, notExist("list", name)
}

func (null) Info(ctx context.Context, name string) (Entry, error) {
	return Entry{}, notExist("info", name)
}

func (null) Exists(ctx context.Context, name string) (bool, error) {
	return false, nil
}

func (null) Open(ctx context.Context, name string) (File, error) {
	return nil, notExist("open", name)
}

func (null) Create(ctx context.Context, name string) (File, error) {
	return nullFile{name: name}, nil
}

func (null) OpenFile(ctx context.Context, name string, flag int, blockSize int) (File, error) {
	if flag&os.O_WRONLY != 0 {
		return nullFile{name: name, blockSize: blockSize}, nil
	}
	return nil, notExist("open", name)
}

func (null) CopyFile(ctx context.Context, src, dst string) error {
	return notExist("open", src)
}

func (null) Move(ctx context.Context, src, dst string) error { return nil }

func (null) MoveFile(ctx context.Context, src, dst string) error { return nil }

func (null) RemoveFile(ctx context.Context, name string) error { return nil }

func (null) Remove(ctx context.Context, name string, opts RemoveOptions) error { return nil }

func (null) Mkdir(ctx context.Context, name string) error { return nil }

func (null) MkdirAll(ctx context.Context, name string) error { return nil }

func (null) RemoveDir(ctx context.Context, name string) error { return nil }

func (null) String() string { return "null" }

// nullFile discards everything written to it.
type nullFile struct {
	name      string
	blockSize int
}

func (f nullFile) Read(p []byte) (int, error) { return 0, io.EOF }

func (f nullFile) Write(p []byte) (int, error) { return len(p), nil }

func (f nullFile) Seek(offset int64, whence int) (int64, error) { return 0, nil }

func (f nullFile) Close() error { return nil }

func (f nullFile) Name() string { return f.name }

func (f nullFile) Readable() bool { return false }

func (f nullFile) Writable() bool { return true }

func (f nullFile) BlockSize() int { return f.blockSize }
