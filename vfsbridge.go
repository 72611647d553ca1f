package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/shogo82148/vfsbridge/vfs"
	"github.com/shogo82148/vfsbridge/vfs/bridge"
	"github.com/shogo82148/vfsbridge/vfs/hdfsfs"
	"github.com/shogo82148/vfsbridge/vfs/mapfs"
	"github.com/shogo82148/vfsbridge/vfs/s3fs"
)

// Run executes a single command against the configured backend.
func Run(c *Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bfs, err := newFileSystem(ctx, c)
	if err != nil {
		return err
	}
	defer bfs.Close()

	var fsys vfs.FileSystem = bfs
	if c.ReadOnly {
		fsys = vfs.ReadOnly(fsys)
	}
	if verbose {
		fsys = logged(fsys)
	}
	return dispatch(ctx, fsys, args)
}

func newFileSystem(ctx context.Context, c *Config) (*bridge.FileSystem, error) {
	switch c.Backend {
	case "hdfs":
		p, err := hdfsfs.New(hdfsfs.Options{
			Host:       c.HDFS.Host,
			Port:       c.HDFS.Port,
			User:       c.HDFS.User,
			KerbTicket: c.HDFS.KerbTicket,
			ExtraConf:  c.HDFS.ExtraConf,
		})
		if err != nil {
			return nil, err
		}
		return bridge.New(p), nil
	case "s3":
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		if c.S3.Region != "" {
			cfg.Region = c.S3.Region
		}
		return bridge.New(&s3fs.FileSystem{
			Config: cfg,
			Bucket: c.S3.Bucket,
			Prefix: c.S3.Prefix,
		}), nil
	case "mem":
		return bridge.New(mapfs.New(map[string]string{})), nil
	}
	return nil, fmt.Errorf("unknown backend %q", c.Backend)
}

func dispatch(ctx context.Context, fsys vfs.FileSystem, args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "ls":
		if len(args) != 1 {
			return fmt.Errorf("usage: ls <path>")
		}
		entries, err := fsys.List(ctx, args[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.Type, e.Size, e.ModTime.Format("2006-01-02 15:04"), e.Name)
		}
		return w.Flush()
	case "info":
		if len(args) != 1 {
			return fmt.Errorf("usage: info <path>")
		}
		e, err := fsys.Info(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%d\t%s\t%s\n", e.Type, e.Size, e.ModTime.Format("2006-01-02 15:04"), e.Name)
		return nil
	case "exists":
		if len(args) != 1 {
			return fmt.Errorf("usage: exists <path>")
		}
		ok, err := fsys.Exists(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	case "cat":
		if len(args) != 1 {
			return fmt.Errorf("usage: cat <path>")
		}
		f, err := fsys.Open(ctx, args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(os.Stdout, f)
		return err
	case "put":
		if len(args) != 2 {
			return fmt.Errorf("usage: put <local> <path>")
		}
		src, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer src.Close()
		dst, err := fsys.Create(ctx, args[1])
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			return err
		}
		return dst.Close()
	case "cp":
		if len(args) != 2 {
			return fmt.Errorf("usage: cp <src> <dst>")
		}
		return fsys.CopyFile(ctx, args[0], args[1])
	case "mv":
		if len(args) != 2 {
			return fmt.Errorf("usage: mv <src> <dst>")
		}
		return fsys.Move(ctx, args[0], args[1])
	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: rm [-r] <path>")
		}
		return fsys.Remove(ctx, args[0], vfs.RemoveOptions{Recursive: recursive})
	case "rmfile":
		if len(args) != 1 {
			return fmt.Errorf("usage: rmfile <path>")
		}
		return fsys.RemoveFile(ctx, args[0])
	case "mkdir":
		if len(args) != 1 {
			return fmt.Errorf("usage: mkdir <path>")
		}
		return fsys.Mkdir(ctx, args[0])
	case "mkdirs":
		if len(args) != 1 {
			return fmt.Errorf("usage: mkdirs <path>")
		}
		return fsys.MkdirAll(ctx, args[0])
	case "rmdir":
		if len(args) != 1 {
			return fmt.Errorf("usage: rmdir <path>")
		}
		return fsys.RemoveDir(ctx, args[0])
	}
	return fmt.Errorf("unknown command %q", cmd)
}
