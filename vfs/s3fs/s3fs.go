// Package s3fs implements the storage provider contract on Amazon S3.
// Directories are virtual: they exist as zero-byte "name/" marker
// objects or implicitly as common prefixes of real keys.
package s3fs

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	pathpkg "path"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/shogo82148/vfsbridge/vfs/driver"
)

type s3client interface {
	manager.UploadAPIClient
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

type uploaderClient interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// FileSystem implements driver.Provider on an S3 bucket.
type FileSystem struct {
	Config aws.Config
	Bucket string
	Prefix string

	mu          sync.Mutex
	s3api       s3client
	uploaderapi uploaderClient
}

var _ driver.Provider = (*FileSystem)(nil)

func (fsys *FileSystem) String() string { return "s3" }

// filekey converts the name to the key value on the S3 bucket.
func (fsys *FileSystem) filekey(name string) string {
	name = pathpkg.Clean("/" + name)
	return strings.TrimPrefix(pathpkg.Join(fsys.Prefix, name), "/")
}

// dirkey converts the name to the key value for directories on the S3 bucket.
func (fsys *FileSystem) dirkey(name string) string {
	name = fsys.filekey(name)
	if name == "" {
		return ""
	}
	return name + "/"
}

// pathOf converts a bucket key back to the provider-native path.
func (fsys *FileSystem) pathOf(key string) string {
	key = strings.TrimSuffix(key, "/")
	if fsys.Prefix != "" {
		key = strings.TrimPrefix(key, strings.TrimPrefix(fsys.Prefix, "/"))
	}
	return pathpkg.Clean("/" + key)
}

func (fsys *FileSystem) s3() s3client {
	fsys.mu.Lock()
	defer fsys.mu.Unlock()

	if fsys.s3api == nil {
		fsys.s3api = s3.NewFromConfig(fsys.Config)
	}
	return fsys.s3api
}

func (fsys *FileSystem) uploader() uploaderClient {
	svc := fsys.s3()
	fsys.mu.Lock()
	defer fsys.mu.Unlock()

	if fsys.uploaderapi == nil {
		fsys.uploaderapi = manager.NewUploader(svc)
	}
	return fsys.uploaderapi
}

// wrapErr classifies S3 responses that have a structured meaning and
// leaves everything else untouched.
func wrapErr(op, name string, err error) error {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusNotFound:
			return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
		case http.StatusForbidden:
			return &fs.PathError{Op: op, Path: name, Err: fs.ErrPermission}
		}
	}
	return err
}

// lookup stats a single path the way the bucket sees it.
func (fsys *FileSystem) lookup(ctx context.Context, name string) (driver.FileInfo, error) {
	// the root always exists.
	if fsys.filekey(name) == "" {
		return driver.FileInfo{Path: "/", Type: driver.TypeDirectory}, nil
	}

	svc := fsys.s3()
	file := fsys.filekey(name)
	resp, err := svc.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(fsys.Bucket),
		Prefix:    aws.String(file),
		Delimiter: aws.String("/"),
		MaxKeys:   aws.Int32(2),
	})
	if err != nil {
		return driver.FileInfo{}, wrapErr("stat", name, err)
	}
	for _, p := range resp.CommonPrefixes {
		if aws.ToString(p.Prefix) == file+"/" {
			return driver.FileInfo{Path: fsys.pathOf(file), Type: driver.TypeDirectory}, nil
		}
	}
	for _, obj := range resp.Contents {
		switch aws.ToString(obj.Key) {
		case file:
			return driver.FileInfo{
				Path:    fsys.pathOf(file),
				Type:    driver.TypeFile,
				Size:    aws.ToInt64(obj.Size),
				ModTime: aws.ToTime(obj.LastModified),
			}, nil
		case file + "/":
			return driver.FileInfo{Path: fsys.pathOf(file), Type: driver.TypeDirectory}, nil
		}
	}
	return driver.FileInfo{Path: fsys.pathOf(file), Type: driver.TypeNotFound}, nil
}

// FileInfo looks up each path, reporting missing ones as TypeNotFound
// records.
func (fsys *FileSystem) FileInfo(ctx context.Context, paths []string) ([]driver.FileInfo, error) {
	infos := make([]driver.FileInfo, 0, len(paths))
	for _, p := range paths {
		info, err := fsys.lookup(ctx, p)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// List returns the immediate children of the directory. A virtual
// directory with no keys below it lists as empty.
func (fsys *FileSystem) List(ctx context.Context, dir string) ([]driver.FileInfo, error) {
	svc := fsys.s3()
	prefix := fsys.dirkey(dir)
	paginator := s3.NewListObjectsV2Paginator(svc, &s3.ListObjectsV2Input{
		Bucket:    aws.String(fsys.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	infos := []driver.FileInfo{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapErr("list", dir, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix {
				// the marker object of the directory itself
				continue
			}
			infos = append(infos, driver.FileInfo{
				Path:    fsys.pathOf(key),
				Type:    driver.TypeFile,
				Size:    aws.ToInt64(obj.Size),
				ModTime: aws.ToTime(obj.LastModified),
			})
		}
		for _, p := range page.CommonPrefixes {
			infos = append(infos, driver.FileInfo{
				Path: fsys.pathOf(aws.ToString(p.Prefix)),
				Type: driver.TypeDirectory,
			})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos, nil
}

// OpenInput opens the object for reading.
func (fsys *FileSystem) OpenInput(ctx context.Context, name string) (io.ReadCloser, error) {
	svc := fsys.s3()
	resp, err := svc.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fsys.Bucket),
		Key:    aws.String(fsys.filekey(name)),
	})
	if err != nil {
		return nil, wrapErr("open", name, err)
	}
	return resp.Body, nil
}

// OpenOutput opens the object for writing. Bytes are streamed to the
// bucket through the upload manager; Close reports the upload result.
func (fsys *FileSystem) OpenOutput(ctx context.Context, name string) (io.WriteCloser, error) {
	pr, pw := io.Pipe()
	w := &s3Writer{pw: pw, done: make(chan error, 1)}
	go func() {
		_, err := fsys.uploader().Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(fsys.Bucket),
			Key:    aws.String(fsys.filekey(name)),
			Body:   pr,
		})
		pr.CloseWithError(err)
		w.done <- wrapErr("write", name, err)
	}()
	return w, nil
}

// Move moves a single object. S3 has no rename, so this is a copy
// followed by a delete and is not atomic; callers relying on atomic
// moves should prefer a backend with a real rename.
func (fsys *FileSystem) Move(ctx context.Context, src, dst string) error {
	svc := fsys.s3()
	srckey := fsys.filekey(src)
	_, err := svc.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(fsys.Bucket),
		Key:        aws.String(fsys.filekey(dst)),
		CopySource: aws.String(url.PathEscape(fsys.Bucket + "/" + srckey)),
	})
	if err != nil {
		return wrapErr("move", src, err)
	}
	_, err = svc.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fsys.Bucket),
		Key:    aws.String(srckey),
	})
	if err != nil {
		return wrapErr("move", src, err)
	}
	return nil
}

// DeleteFile removes a single object. Deleting a missing object
// succeeds; S3 deletes are idempotent.
func (fsys *FileSystem) DeleteFile(ctx context.Context, name string) error {
	svc := fsys.s3()
	_, err := svc.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fsys.Bucket),
		Key:    aws.String(fsys.filekey(name)),
	})
	if err != nil {
		return wrapErr("remove", name, err)
	}
	return nil
}

// DeleteDir removes every key below the directory, in batches.
func (fsys *FileSystem) DeleteDir(ctx context.Context, name string) error {
	svc := fsys.s3()
	paginator := s3.NewListObjectsV2Paginator(svc, &s3.ListObjectsV2Input{
		Bucket: aws.String(fsys.Bucket),
		Prefix: aws.String(fsys.dirkey(name)),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return wrapErr("rmdir", name, err)
		}
		if len(page.Contents) == 0 {
			continue
		}
		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}
		_, err = svc.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(fsys.Bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return wrapErr("rmdir", name, err)
		}
	}
	return nil
}

// CreateDir creates a zero-byte marker object for the directory.
// Ancestors are implied by the key structure, so the recursive form
// needs a single marker too.
func (fsys *FileSystem) CreateDir(ctx context.Context, name string, recursive bool) error {
	if !recursive {
		info, err := fsys.lookup(ctx, name)
		if err != nil {
			return err
		}
		if info.Type != driver.TypeNotFound {
			return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
		}
		parent := pathpkg.Dir(strings.TrimRight(name, "/"))
		pinfo, err := fsys.lookup(ctx, parent)
		if err != nil {
			return err
		}
		if pinfo.Type != driver.TypeDirectory {
			return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrNotExist}
		}
	}

	svc := fsys.s3()
	_, err := svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(fsys.Bucket),
		Key:    aws.String(fsys.dirkey(name)),
		Body:   strings.NewReader(""),
	})
	if err != nil {
		return wrapErr("mkdir", name, err)
	}
	return nil
}

// s3Writer feeds an in-flight upload through a pipe.
type s3Writer struct {
	pw     *io.PipeWriter
	done   chan error
	closed bool
}

func (w *s3Writer) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *s3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}
