package main

import (
	"context"
	"time"

	"github.com/shogo82148/vfsbridge/vfs"
	"github.com/sirupsen/logrus"
)

// logged wraps a file system and logs every operation with its
// duration and result.
func logged(fsys vfs.FileSystem) vfs.FileSystem {
	return loggedFileSystem{fsys}
}

type loggedFileSystem struct {
	fsys vfs.FileSystem
}

func logOp(op, path string, start time.Time, err error) {
	entry := logrus.WithFields(logrus.Fields{
		"op":       op,
		"path":     path,
		"duration": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Error("operation failed")
		return
	}
	entry.Info("ok")
}

func (l loggedFileSystem) List(ctx context.Context, name string) (entries []vfs.Entry, err error) {
	start := time.Now()
	defer func() { logOp("list", name, start, err) }()
	return l.fsys.List(ctx, name)
}

func (l loggedFileSystem) ListNames(ctx context.Context, name string) (names []string, err error) {
	start := time.Now()
	defer func() { logOp("list", name, start, err) }()
	return l.fsys.ListNames(ctx, name)
}

func (l loggedFileSystem) Info(ctx context.Context, name string) (e vfs.Entry, err error) {
	start := time.Now()
	defer func() { logOp("info", name, start, err) }()
	return l.fsys.Info(ctx, name)
}

func (l loggedFileSystem) Exists(ctx context.Context, name string) (ok bool, err error) {
	start := time.Now()
	defer func() { logOp("exists", name, start, err) }()
	return l.fsys.Exists(ctx, name)
}

func (l loggedFileSystem) Open(ctx context.Context, name string) (f vfs.File, err error) {
	start := time.Now()
	defer func() { logOp("open", name, start, err) }()
	return l.fsys.Open(ctx, name)
}

func (l loggedFileSystem) Create(ctx context.Context, name string) (f vfs.File, err error) {
	start := time.Now()
	defer func() { logOp("create", name, start, err) }()
	return l.fsys.Create(ctx, name)
}

func (l loggedFileSystem) OpenFile(ctx context.Context, name string, flag int, blockSize int) (f vfs.File, err error) {
	start := time.Now()
	defer func() { logOp("open", name, start, err) }()
	return l.fsys.OpenFile(ctx, name, flag, blockSize)
}

func (l loggedFileSystem) CopyFile(ctx context.Context, src, dst string) (err error) {
	start := time.Now()
	defer func() { logOp("copy", src, start, err) }()
	return l.fsys.CopyFile(ctx, src, dst)
}

func (l loggedFileSystem) Move(ctx context.Context, src, dst string) (err error) {
	start := time.Now()
	defer func() { logOp("move", src, start, err) }()
	return l.fsys.Move(ctx, src, dst)
}

func (l loggedFileSystem) MoveFile(ctx context.Context, src, dst string) (err error) {
	start := time.Now()
	defer func() { logOp("move", src, start, err) }()
	return l.fsys.MoveFile(ctx, src, dst)
}

func (l loggedFileSystem) RemoveFile(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { logOp("remove", name, start, err) }()
	return l.fsys.RemoveFile(ctx, name)
}

func (l loggedFileSystem) Remove(ctx context.Context, name string, opts vfs.RemoveOptions) (err error) {
	start := time.Now()
	defer func() { logOp("remove", name, start, err) }()
	return l.fsys.Remove(ctx, name, opts)
}

func (l loggedFileSystem) Mkdir(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { logOp("mkdir", name, start, err) }()
	return l.fsys.Mkdir(ctx, name)
}

func (l loggedFileSystem) MkdirAll(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { logOp("mkdir", name, start, err) }()
	return l.fsys.MkdirAll(ctx, name)
}

func (l loggedFileSystem) RemoveDir(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { logOp("rmdir", name, start, err) }()
	return l.fsys.RemoveDir(ctx, name)
}

func (l loggedFileSystem) String() string { return l.fsys.String() }
