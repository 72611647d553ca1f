package bridge

import (
	"io"
	"io/fs"

	"github.com/shogo82148/vfsbridge/vfs"
)

// File forwards the generic handle operations to a stream owned by a
// storage provider. It does no buffering of its own; the block size is
// an advisory hint for callers that inspect it.
type File struct {
	name      string
	r         io.ReadCloser
	w         io.WriteCloser
	blockSize int
	closed    bool
}

var _ vfs.File = (*File)(nil)

func newReadFile(name string, r io.ReadCloser, blockSize int) *File {
	return &File{name: name, r: r, blockSize: blockSize}
}

func newWriteFile(name string, w io.WriteCloser, blockSize int) *File {
	return &File{name: name, w: w, blockSize: blockSize}
}

// Name returns the path the handle was opened with.
func (f *File) Name() string { return f.name }

// Readable reports whether the handle was opened for reading.
func (f *File) Readable() bool { return f.r != nil }

// Writable reports whether the handle was opened for writing.
func (f *File) Writable() bool { return f.w != nil }

// BlockSize returns the advisory block size hint, or zero.
func (f *File) BlockSize() int { return f.blockSize }

func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: fs.ErrClosed}
	}
	if f.r == nil {
		return 0, &fs.PathError{Op: "read", Path: f.name, Err: fs.ErrInvalid}
	}
	return f.r.Read(p)
}

func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, &fs.PathError{Op: "write", Path: f.name, Err: fs.ErrClosed}
	}
	if f.w == nil {
		return 0, &fs.PathError{Op: "write", Path: f.name, Err: fs.ErrInvalid}
	}
	return f.w.Write(p)
}

// Seek forwards to the inner stream. Streams that do not support
// seeking report vfs.ErrUnsupported.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, &fs.PathError{Op: "seek", Path: f.name, Err: fs.ErrClosed}
	}
	var inner interface{} = f.r
	if f.r == nil {
		inner = f.w
	}
	if s, ok := inner.(io.Seeker); ok {
		return s.Seek(offset, whence)
	}
	return 0, &fs.PathError{Op: "seek", Path: f.name, Err: vfs.ErrUnsupported}
}

// Close closes the inner stream. Closing an already-closed handle is a
// no-op, not an error.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.r != nil {
		return f.r.Close()
	}
	return f.w.Close()
}
