package mapfs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shogo82148/vfsbridge/vfs/driver"
)

var _ driver.Provider = &FileSystem{}

func TestFileInfo(t *testing.T) {
	ctx := context.Background()
	fsys := New(map[string]string{
		"foo.txt":     "foo",
		"dir/bar.txt": "bar",
	})

	infos, err := fsys.FileInfo(ctx, []string{"/foo.txt", "/dir", "/missing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 3 {
		t.Fatalf("want 3 records, got %d", len(infos))
	}
	if infos[0].Type != driver.TypeFile || infos[0].Size != 3 {
		t.Errorf("unexpected record: %+v", infos[0])
	}
	if infos[1].Type != driver.TypeDirectory {
		t.Errorf("unexpected record: %+v", infos[1])
	}
	if infos[2].Type != driver.TypeNotFound {
		t.Errorf("unexpected record: %+v", infos[2])
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	fsys := New(map[string]string{
		"dir/b.txt":   "b",
		"dir/a.txt":   "a",
		"dir/sub/c":   "c",
		"toplevel.go": "x",
	})

	t.Run("sorted-children", func(t *testing.T) {
		infos, err := fsys.List(ctx, "/dir")
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"/dir/a.txt", "/dir/b.txt", "/dir/sub"}
		if len(infos) != len(want) {
			t.Fatalf("want %d records, got %+v", len(want), infos)
		}
		for i, fi := range infos {
			if fi.Path != want[i] {
				t.Errorf("want %s, got %s", want[i], fi.Path)
			}
		}
	})

	t.Run("missing-directory", func(t *testing.T) {
		_, err := fsys.List(ctx, "/nope")
		if err == nil || !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestOpenOutput(t *testing.T) {
	ctx := context.Background()
	fsys := New(map[string]string{})

	w, err := fsys.OpenOutput(ctx, "/a/b/file")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "content"); err != nil {
		t.Fatal(err)
	}

	// not visible until closed
	if _, err := fsys.OpenInput(ctx, "/a/b/file"); err == nil {
		t.Error("file visible before close")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := fsys.OpenInput(ctx, "/a/b/file")
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "content" {
		t.Errorf("want content, got %s", string(b))
	}

	// parents appeared implicitly
	infos, err := fsys.FileInfo(ctx, []string{"/a", "/a/b"})
	if err != nil {
		t.Fatal(err)
	}
	for _, fi := range infos {
		if fi.Type != driver.TypeDirectory {
			t.Errorf("unexpected record: %+v", fi)
		}
	}
}

func TestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		fsys := New(map[string]string{"a": "1"})
		if err := fsys.Move(ctx, "/a", "/b"); err != nil {
			t.Fatal(err)
		}
		infos, _ := fsys.FileInfo(ctx, []string{"/a", "/b"})
		if infos[0].Type != driver.TypeNotFound || infos[1].Type != driver.TypeFile {
			t.Errorf("unexpected records: %+v", infos)
		}
	})

	t.Run("directory", func(t *testing.T) {
		fsys := New(map[string]string{"d/x": "1", "d/sub/y": "2"})
		if err := fsys.Move(ctx, "/d", "/e"); err != nil {
			t.Fatal(err)
		}
		infos, _ := fsys.FileInfo(ctx, []string{"/d", "/e/x", "/e/sub/y"})
		if infos[0].Type != driver.TypeNotFound {
			t.Errorf("source still there: %+v", infos[0])
		}
		if infos[1].Type != driver.TypeFile || infos[2].Type != driver.TypeFile {
			t.Errorf("subtree not moved: %+v", infos[1:])
		}
	})

	t.Run("missing", func(t *testing.T) {
		fsys := New(map[string]string{})
		err := fsys.Move(ctx, "/a", "/b")
		if err == nil || !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		fsys := New(map[string]string{"a": "1"})
		if err := fsys.DeleteFile(ctx, "/a"); err != nil {
			t.Fatal(err)
		}
		if err := fsys.DeleteFile(ctx, "/a"); err == nil {
			t.Error("want an error for a missing file")
		}
	})

	t.Run("subtree", func(t *testing.T) {
		fsys := New(map[string]string{"d/x": "1", "d/sub/y": "2", "keep": "3"})
		if err := fsys.DeleteDir(ctx, "/d"); err != nil {
			t.Fatal(err)
		}
		infos, _ := fsys.FileInfo(ctx, []string{"/d", "/d/x", "/d/sub/y", "/keep"})
		for _, fi := range infos[:3] {
			if fi.Type != driver.TypeNotFound {
				t.Errorf("not deleted: %+v", fi)
			}
		}
		if infos[3].Type != driver.TypeFile {
			t.Errorf("unrelated file deleted: %+v", infos[3])
		}
	})
}

func TestCreateDir(t *testing.T) {
	ctx := context.Background()

	t.Run("recursive", func(t *testing.T) {
		fsys := New(map[string]string{})
		if err := fsys.CreateDir(ctx, "/a/b/c", true); err != nil {
			t.Fatal(err)
		}
		if err := fsys.CreateDir(ctx, "/a/b/c", true); err != nil {
			t.Errorf("recursive create is not idempotent: %v", err)
		}
	})

	t.Run("non-recursive", func(t *testing.T) {
		fsys := New(map[string]string{"d/x": "1"})
		if err := fsys.CreateDir(ctx, "/d/new", false); err != nil {
			t.Fatal(err)
		}
		if err := fsys.CreateDir(ctx, "/d/new", false); err == nil {
			t.Error("want an error for an existing directory")
		}
		if err := fsys.CreateDir(ctx, "/no/parent", false); err == nil {
			t.Error("want an error for a missing parent")
		}
	})
}
