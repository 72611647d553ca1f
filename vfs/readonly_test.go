package vfs

import (
	"context"
	"errors"
	"io/fs"
	"testing"
)

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	fsys := ReadOnly(nil)

	t.Run("reads-pass-through", func(t *testing.T) {
		if _, err := fsys.List(ctx, "/"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		ok, err := fsys.Exists(ctx, "/missing")
		if err != nil || ok {
			t.Errorf("unexpected result: %v, %v", ok, err)
		}
	})

	t.Run("writes-denied", func(t *testing.T) {
		checks := map[string]error{
			"create": func() error { _, err := fsys.Create(ctx, "/a"); return err }(),
			"copy":   fsys.CopyFile(ctx, "/a", "/b"),
			"move":   fsys.Move(ctx, "/a", "/b"),
			"remove": fsys.Remove(ctx, "/a", RemoveOptions{Recursive: true}),
			"rmfile": fsys.RemoveFile(ctx, "/a"),
			"mkdir":  fsys.Mkdir(ctx, "/a"),
			"mkdirs": fsys.MkdirAll(ctx, "/a"),
			"rmdir":  fsys.RemoveDir(ctx, "/a"),
		}
		for name, err := range checks {
			if !errors.Is(err, fs.ErrPermission) {
				t.Errorf("%s: unexpected error: %v", name, err)
			}
		}
	})

	t.Run("string", func(t *testing.T) {
		if s := fsys.String(); s != "readonly null" {
			t.Errorf("unexpected string: %q", s)
		}
	})
}

func TestNull(t *testing.T) {
	ctx := context.Background()

	t.Run("root-lists-empty", func(t *testing.T) {
		entries, err := Null.List(ctx, "/")
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("unexpected entries: %+v", entries)
		}
	})

	t.Run("reads-fail", func(t *testing.T) {
		if _, err := Null.Info(ctx, "/a"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("unexpected error: %v", err)
		}
		if _, err := Null.Open(ctx, "/a"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("writes-discard", func(t *testing.T) {
		f, err := Null.Create(ctx, "/a")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte("ignored")); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}
		ok, err := Null.Exists(ctx, "/a")
		if err != nil || ok {
			t.Errorf("unexpected result: %v, %v", ok, err)
		}
	})
}
