package vfs

import (
	"context"
	"io/fs"
)

// ReadOnly makes fs read only.
func ReadOnly(fsys FileSystem) FileSystem {
	if fsys == nil {
		fsys = Null
	}
	return readonly{fsys}
}

type readonly struct {
	FileSystem
}

func permission(op, name string) error {
	return &fs.PathError{
		Op:   op,
		Path: name,
		Err:  fs.ErrPermission,
	}
}

func (fsys readonly) Create(ctx context.Context, name string) (File, error) {
	return nil, permission("create", name)
}

func (fsys readonly) OpenFile(ctx context.Context, name string, flag int, blockSize int) (File, error) {
	if flag != 0 { // anything but O_RDONLY
		return nil, permission("open", name)
	}
	return fsys.FileSystem.OpenFile(ctx, name, flag, blockSize)
}

func (fsys readonly) CopyFile(ctx context.Context, src, dst string) error {
	return permission("copy", dst)
}

func (fsys readonly) Move(ctx context.Context, src, dst string) error {
	return permission("move", src)
}

func (fsys readonly) MoveFile(ctx context.Context, src, dst string) error {
	return permission("move", src)
}

func (fsys readonly) RemoveFile(ctx context.Context, name string) error {
	return permission("remove", name)
}

func (fsys readonly) Remove(ctx context.Context, name string, opts RemoveOptions) error {
	return permission("remove", name)
}

func (fsys readonly) Mkdir(ctx context.Context, name string) error {
	return permission("mkdir", name)
}

func (fsys readonly) MkdirAll(ctx context.Context, name string) error {
	return permission("mkdir", name)
}

func (fsys readonly) RemoveDir(ctx context.Context, name string) error {
	return permission("rmdir", name)
}

func (fsys readonly) String() string { return "readonly " + fsys.FileSystem.String() }
