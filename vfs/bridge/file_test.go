package bridge

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/shogo82148/vfsbridge/vfs"
)

type closeCounter struct {
	io.Reader
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestFileRead(t *testing.T) {
	r := &closeCounter{Reader: strings.NewReader("hello")}
	f := newReadFile("/a", r, 0)

	b, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Errorf("want hello, got %s", string(b))
	}
	if _, err := f.Write([]byte("x")); !errors.Is(err, fs.ErrInvalid) {
		t.Errorf("write on a read handle: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Read(b); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("read after close: %v", err)
	}
}

type discardWriter struct{ n int }

func (w *discardWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

func (w *discardWriter) Close() error { return nil }

func TestFileWrite(t *testing.T) {
	w := &discardWriter{}
	f := newWriteFile("/a", w, 0)

	if _, err := io.WriteString(f, "hello"); err != nil {
		t.Fatal(err)
	}
	if w.n != 5 {
		t.Errorf("want 5 bytes written, got %d", w.n)
	}
	var p [1]byte
	if _, err := f.Read(p[:]); !errors.Is(err, fs.ErrInvalid) {
		t.Errorf("read on a write handle: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("x")); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("write after close: %v", err)
	}
}

func TestFileSeek(t *testing.T) {
	t.Run("seekable", func(t *testing.T) {
		f := newReadFile("/a", nopSeekCloser{strings.NewReader("hello")}, 0)

		if _, err := f.Seek(2, io.SeekStart); err != nil {
			t.Fatal(err)
		}
		b, err := io.ReadAll(f)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != "llo" {
			t.Errorf("want llo, got %s", string(b))
		}

		// current position works as a tell
		if pos, err := f.Seek(0, io.SeekCurrent); err != nil || pos != 5 {
			t.Errorf("want position 5, got %d, %v", pos, err)
		}
	})

	t.Run("unseekable", func(t *testing.T) {
		f := newReadFile("/a", &closeCounter{Reader: strings.NewReader("hello")}, 0)
		if _, err := f.Seek(0, io.SeekStart); !errors.Is(err, vfs.ErrUnsupported) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestFileClose(t *testing.T) {
	r := &closeCounter{Reader: strings.NewReader("hello")}
	f := newReadFile("/a", r, 0)

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if r.closed != 1 {
		t.Errorf("inner stream closed %d times", r.closed)
	}
}

type nopSeekCloser struct {
	io.ReadSeeker
}

func (nopSeekCloser) Close() error { return nil }
