// Package driver defines the storage provider contract consumed by the
// vfs/bridge adapter, in the manner of database/sql/driver: storage
// backends implement Provider, users program against vfs.FileSystem.
package driver

import (
	"context"
	"io"
	"time"
)

// FileType is the provider-native kind tag of a path.
type FileType int

const (
	// TypeNotFound marks a path the provider reports as missing.
	// It is a value, not an error: lookups return it instead of failing.
	TypeNotFound FileType = iota
	// TypeFile is a regular file.
	TypeFile
	// TypeDirectory is a directory.
	TypeDirectory
	// TypeOther is any other kind, such as a symlink.
	TypeOther
)

func (t FileType) String() string {
	switch t {
	case TypeNotFound:
		return "not-found"
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	}
	return "other"
}

// FileInfo is a provider-native stat record.
type FileInfo struct {
	// Path is the full provider-native path of the entry.
	Path string

	// Type is the kind of the entry, or TypeNotFound.
	Type FileType

	// Size is the byte size. It is zero when Type is not TypeFile.
	Size int64

	// ModTime is the last modification time, when the provider tracks one.
	ModTime time.Time
}

// Provider is the set of primitives a storage backend must offer.
//
// Lookups report missing paths as records with TypeNotFound rather than
// as errors. All other failures are returned as the provider's own
// errors; the bridge reclassifies them.
type Provider interface {
	// FileInfo looks up each of the given paths.
	// The result has exactly one record per requested path, in order.
	FileInfo(ctx context.Context, paths []string) ([]FileInfo, error)

	// List returns the immediate children of the directory.
	List(ctx context.Context, dir string) ([]FileInfo, error)

	// OpenInput opens the file for reading.
	OpenInput(ctx context.Context, path string) (io.ReadCloser, error)

	// OpenOutput opens the file for writing, creating it if missing and
	// truncating it otherwise.
	OpenOutput(ctx context.Context, path string) (io.WriteCloser, error)

	// Move moves src to dst, atomically where the backend allows.
	Move(ctx context.Context, src, dst string) error

	// DeleteFile removes a single file.
	DeleteFile(ctx context.Context, path string) error

	// DeleteDir removes a directory and everything below it.
	DeleteDir(ctx context.Context, path string) error

	// CreateDir creates the directory. With recursive it creates missing
	// ancestors too and succeeds on an already-existing directory.
	CreateDir(ctx context.Context, path string, recursive bool) error
}
