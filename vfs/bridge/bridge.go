// Package bridge adapts a storage provider to the vfs.FileSystem
// contract. Path normalization, entry translation, error
// reclassification and the copy-to-temporary protocol all live here;
// the actual storage is behind the driver.Provider interface.
package bridge

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	pathpkg "path"

	"github.com/shogo82148/vfsbridge/vfs"
	"github.com/shogo82148/vfsbridge/vfs/driver"
)

// FileSystem implements vfs.FileSystem on top of a storage provider.
type FileSystem struct {
	provider driver.Provider
}

var _ vfs.FileSystem = (*FileSystem)(nil)

// New returns a FileSystem backed by the given provider.
// The adapter assumes exclusive ownership of the provider for its
// lifetime; providers are not pooled or shared.
func New(p driver.Provider) *FileSystem {
	return &FileSystem{provider: p}
}

// Close closes the owned provider when it supports closing.
func (fsys *FileSystem) Close() error {
	if c, ok := fsys.provider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (fsys *FileSystem) String() string {
	if s, ok := fsys.provider.(fmt.Stringer); ok {
		return "bridge " + s.String()
	}
	return "bridge"
}

// entryFromInfo translates a provider stat record into the generic
// entry shape. A TypeNotFound record becomes a not-exist failure, never
// an entry: it shows up when a path disappears between enumeration and
// inspection.
func entryFromInfo(fi driver.FileInfo) (vfs.Entry, error) {
	var typ vfs.EntryType
	switch fi.Type {
	case driver.TypeFile:
		typ = vfs.TypeFile
	case driver.TypeDirectory:
		typ = vfs.TypeDirectory
	case driver.TypeNotFound:
		return vfs.Entry{}, &fs.PathError{
			Op:   "stat",
			Path: fi.Path,
			Err:  fs.ErrNotExist,
		}
	default:
		typ = vfs.TypeOther
	}
	return vfs.Entry{
		Name:    fi.Path,
		Size:    fi.Size,
		Type:    typ,
		ModTime: fi.ModTime,
	}, nil
}

// List returns the entries of the directory in the order the provider
// yields them.
func (fsys *FileSystem) List(ctx context.Context, name string) ([]vfs.Entry, error) {
	name = StripScheme(name)
	infos, err := fsys.provider.List(ctx, name)
	if err != nil {
		return nil, wrapError("list", name, err)
	}
	entries := make([]vfs.Entry, 0, len(infos))
	for _, fi := range infos {
		e, err := entryFromInfo(fi)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ListNames is List reduced to the entry names.
func (fsys *FileSystem) ListNames(ctx context.Context, name string) ([]string, error) {
	entries, err := fsys.List(ctx, name)
	if err != nil {
		return nil, err
	}
	return vfs.Names(entries), nil
}

// Info returns the entry for the named path.
func (fsys *FileSystem) Info(ctx context.Context, name string) (vfs.Entry, error) {
	name = StripScheme(name)
	infos, err := fsys.provider.FileInfo(ctx, []string{name})
	if err != nil {
		return vfs.Entry{}, wrapError("stat", name, err)
	}
	if len(infos) != 1 {
		return vfs.Entry{}, fmt.Errorf("bridge: provider returned %d records for a single path", len(infos))
	}
	return entryFromInfo(infos[0])
}

// Exists reports whether the named path exists. Failures other than
// non-existence propagate.
func (fsys *FileSystem) Exists(ctx context.Context, name string) (bool, error) {
	_, err := fsys.Info(ctx, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Open opens the named file for reading.
func (fsys *FileSystem) Open(ctx context.Context, name string) (vfs.File, error) {
	return fsys.OpenFile(ctx, name, os.O_RDONLY, 0)
}

// Create creates the named file for writing, truncating it if it
// already exists.
func (fsys *FileSystem) Create(ctx context.Context, name string) (vfs.File, error) {
	return fsys.OpenFile(ctx, name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0)
}

// OpenFile opens the named file. Only read-only and write-only modes
// are supported: flag must be os.O_RDONLY, or os.O_WRONLY optionally
// combined with os.O_CREATE and os.O_TRUNC. Anything else, including
// O_RDWR and O_APPEND, is invalid.
func (fsys *FileSystem) OpenFile(ctx context.Context, name string, flag int, blockSize int) (vfs.File, error) {
	name = StripScheme(name)
	switch {
	case flag == os.O_RDONLY:
		r, err := fsys.provider.OpenInput(ctx, name)
		if err != nil {
			return nil, wrapError("open", name, err)
		}
		return newReadFile(name, r, blockSize), nil
	case flag&os.O_WRONLY != 0 && flag&^(os.O_WRONLY|os.O_CREATE|os.O_TRUNC) == 0:
		w, err := fsys.provider.OpenOutput(ctx, name)
		if err != nil {
			return nil, wrapError("open", name, err)
		}
		return newWriteFile(name, w, blockSize), nil
	}
	return nil, &fs.PathError{
		Op:   "open",
		Path: name,
		Err:  fmt.Errorf("%w: unsupported flags %#o", fs.ErrInvalid, flag),
	}
}

// randomSuffix returns 32 hex characters from crypto/rand, so that
// concurrent copies into the same directory cannot collide.
func randomSuffix() string {
	var buf [16]byte
	if _, err := crand.Read(buf[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf[:])
}

// CopyFile copies src to dst through a temporary file in dst's parent
// directory, then moves the temporary over dst in one step. dst is
// never observably partially written; atomicity of the final step is
// the provider's Move. If the process dies between creating the
// temporary and cleaning it up, an orphan ".tmp." file may remain.
func (fsys *FileSystem) CopyFile(ctx context.Context, src, dst string) error {
	src = normalize(src)
	dst = normalize(dst)

	r, err := fsys.provider.OpenInput(ctx, src)
	if err != nil {
		return wrapError("open", src, err)
	}
	defer r.Close()

	tmp := pathpkg.Join(parentPath(dst), ".tmp."+randomSuffix())
	err = func() error {
		w, err := fsys.provider.OpenOutput(ctx, tmp)
		if err != nil {
			return wrapError("open", tmp, err)
		}
		if _, err := io.Copy(w, r); err != nil {
			w.Close()
			return wrapError("copy", src, err)
		}
		if err := w.Close(); err != nil {
			return wrapError("copy", tmp, err)
		}
		return wrapError("move", dst, fsys.provider.Move(ctx, tmp, dst))
	}()
	if err == nil {
		return nil
	}

	// Best-effort removal of the temporary, even when ctx is already
	// canceled. The temporary may never have been created, or may have
	// been moved away; only that case is ignored. Any other cleanup
	// failure is reported together with the original one.
	cleanupCtx := context.WithoutCancel(ctx)
	if derr := wrapError("remove", tmp, fsys.provider.DeleteFile(cleanupCtx, tmp)); derr != nil && !errors.Is(derr, fs.ErrNotExist) {
		return errors.Join(err, derr)
	}
	return err
}

// Move moves src to dst.
func (fsys *FileSystem) Move(ctx context.Context, src, dst string) error {
	src = normalize(src)
	dst = normalize(dst)
	return wrapError("move", src, fsys.provider.Move(ctx, src, dst))
}

// MoveFile is identical to Move.
func (fsys *FileSystem) MoveFile(ctx context.Context, src, dst string) error {
	return fsys.Move(ctx, src, dst)
}

// RemoveFile removes the named file.
func (fsys *FileSystem) RemoveFile(ctx context.Context, name string) error {
	name = StripScheme(name)
	return wrapError("remove", name, fsys.provider.DeleteFile(ctx, name))
}

// Remove removes the named file, or the named directory and its whole
// subtree when opts.Recursive is set. Removing a directory without
// Recursive fails with fs.ErrInvalid and deletes nothing.
// opts.MaxDepth has no effect; see vfs.RemoveOptions.
func (fsys *FileSystem) Remove(ctx context.Context, name string, opts vfs.RemoveOptions) error {
	name = normalize(name)
	if fsys.isDir(ctx, name) {
		if !opts.Recursive {
			return &fs.PathError{
				Op:   "remove",
				Path: name,
				Err:  fmt.Errorf("%w: directories need recursive removal", fs.ErrInvalid),
			}
		}
		return wrapError("remove", name, fsys.provider.DeleteDir(ctx, name))
	}
	return wrapError("remove", name, fsys.provider.DeleteFile(ctx, name))
}

// isDir reports whether the path exists and is a directory. Lookup
// failures of any kind count as "not a directory": the following
// file-delete will surface its own error.
func (fsys *FileSystem) isDir(ctx context.Context, name string) bool {
	e, err := fsys.Info(ctx, name)
	return err == nil && e.IsDir()
}

// Mkdir creates a single directory, failing if its parent is missing
// or if it already exists.
func (fsys *FileSystem) Mkdir(ctx context.Context, name string) error {
	name = StripScheme(name)
	return wrapError("mkdir", name, fsys.provider.CreateDir(ctx, name, false))
}

// MkdirAll creates the directory and any missing ancestors. The
// recursive create of every provider is idempotent, so already-existing
// directories cannot be made to fail here.
func (fsys *FileSystem) MkdirAll(ctx context.Context, name string) error {
	name = StripScheme(name)
	return wrapError("mkdir", name, fsys.provider.CreateDir(ctx, name, true))
}

// RemoveDir removes the directory. It does not check that the
// directory is empty first; whether that is an error is up to the
// provider.
func (fsys *FileSystem) RemoveDir(ctx context.Context, name string) error {
	name = StripScheme(name)
	return wrapError("rmdir", name, fsys.provider.DeleteDir(ctx, name))
}
