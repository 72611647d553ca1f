// Package vfs defines a virtual file system interface whose
// methods accept a context.Context parameter.
// It is the target-facing contract implemented by the adapters in
// the vfs/bridge package.
package vfs

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when the underlying storage cannot
// provide a requested capability, for example Seek on a write stream.
var ErrUnsupported = errors.New("operation not supported")

// EntryType is the kind of a directory entry.
type EntryType int8

const (
	// TypeFile is a regular file.
	TypeFile EntryType = iota
	// TypeDirectory is a directory.
	TypeDirectory
	// TypeOther covers symlinks and any kind the storage does not
	// report as a file or a directory.
	TypeOther
)

func (t EntryType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	}
	return "other"
}

// Entry is a directory-listing or stat record.
// Name is the full storage-native path, not the base name.
type Entry struct {
	Name    string
	Size    int64
	Type    EntryType
	ModTime time.Time
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Type == TypeDirectory }

// RemoveOptions controls FileSystem.Remove.
type RemoveOptions struct {
	// Recursive allows removing a directory together with its contents.
	// Removing a directory without it is an error.
	Recursive bool

	// MaxDepth is accepted for interface compatibility and has no
	// effect: the storage backends offer no depth-limited deletion.
	MaxDepth int
}

// A File is an open handle returned by Open, Create or OpenFile.
// A handle is either readable or writable, never both.
// Close may be called more than once; calls after the first are no-ops.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Name returns the path the handle was opened with.
	Name() string

	// Readable reports whether the handle was opened for reading.
	Readable() bool

	// Writable reports whether the handle was opened for writing.
	Writable() bool

	// BlockSize returns the advisory block size hint given to OpenFile,
	// or zero. It does not affect I/O done through the handle.
	BlockSize() int
}

// The FileSystem interface specifies the methods used to access the
// file system.
type FileSystem interface {
	// List returns the entries of the directory, non-recursively,
	// in the order the storage yields them.
	List(ctx context.Context, name string) ([]Entry, error)

	// ListNames is List reduced to the entry names.
	ListNames(ctx context.Context, name string) ([]string, error)

	// Info returns the entry for the named path. If the path does not
	// exist, the error can be detected using errors.Is(err, fs.ErrNotExist).
	Info(ctx context.Context, name string) (Entry, error)

	// Exists reports whether the named path exists. Failures other
	// than non-existence are returned, not swallowed.
	Exists(ctx context.Context, name string) (bool, error)

	// Open opens the named file for reading.
	Open(ctx context.Context, name string) (File, error)

	// Create creates the named file for writing, truncating it if it
	// already exists.
	Create(ctx context.Context, name string) (File, error)

	// OpenFile opens the named file with the given flags. blockSize is
	// an advisory hint recorded on the handle.
	OpenFile(ctx context.Context, name string, flag int, blockSize int) (File, error)

	// CopyFile copies src to dst. dst never shows partial content:
	// it is either untouched or fully replaced.
	CopyFile(ctx context.Context, src, dst string) error

	// Move moves src to dst.
	Move(ctx context.Context, src, dst string) error

	// MoveFile is identical to Move.
	MoveFile(ctx context.Context, src, dst string) error

	// RemoveFile removes the named file.
	RemoveFile(ctx context.Context, name string) error

	// Remove removes the named file or, with opts.Recursive, the named
	// directory and everything below it.
	Remove(ctx context.Context, name string, opts RemoveOptions) error

	// Mkdir creates a single directory. It fails if the parent is
	// missing or the directory already exists.
	Mkdir(ctx context.Context, name string) error

	// MkdirAll creates the directory and any missing ancestors.
	// Already-existing directories are not an error.
	MkdirAll(ctx context.Context, name string) error

	// RemoveDir removes the named directory. Whether a non-empty
	// directory is an error is up to the storage.
	RemoveDir(ctx context.Context, name string) error

	String() string
}

// Names reduces entries to their names, preserving order.
func Names(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
