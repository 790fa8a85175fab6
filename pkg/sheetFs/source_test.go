package sheetFs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

func TestSheetKey(t *testing.T) {
	tests := []struct {
		base  string
		index int
		ext   string
		want  string
	}{
		{"movies/c_berlin", 0, "png", "movies/c_berlin/sprite_sheet_000.png"},
		{"movies/c_berlin/", 7, "webp", "movies/c_berlin/sprite_sheet_007.webp"},
		{"intro1", 123, "png", "intro1/sprite_sheet_123.png"},
		{"x", 1000, "png", "x/sprite_sheet_1000.png"},
	}
	for _, tc := range tests {
		if got := SheetKey(tc.base, tc.index, tc.ext); got != tc.want {
			t.Errorf("SheetKey(%q, %d, %q) = %q, want %q", tc.base, tc.index, tc.ext, got, tc.want)
		}
	}
	if got := AudioKey("movies/c_berlin"); got != "movies/c_berlin/audio.wav" {
		t.Errorf("AudioKey = %q", got)
	}
}

func TestLocalSource(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "movies", "intro1")
	if err := os.MkdirAll(filepath.Join(dir, "sprite_sheet_001.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sprite_sheet_000.png"), []byte("sheet"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewLocalSource(root)
	ctx := context.Background()

	if !src.Exists(ctx, "movies/intro1/sprite_sheet_000.png") {
		t.Error("expected sheet 0 to exist")
	}
	if src.Exists(ctx, "movies/intro1/sprite_sheet_001.png") {
		t.Error("a directory must not count as a sheet")
	}
	if src.Exists(ctx, "movies/intro1/sprite_sheet_002.png") {
		t.Error("expected sheet 2 to be missing")
	}

	b, err := src.ReadAll(ctx, "movies/intro1/sprite_sheet_000.png")
	if err != nil || string(b) != "sheet" {
		t.Fatalf("ReadAll = %q, %v", b, err)
	}

	if _, err := src.ReadAll(ctx, "movies/intro1/audio.wav"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
	heads   []string
}

func (f *fakeS3) HeadObjectWithContext(_ aws.Context, in *s3.HeadObjectInput, _ ...request.Option) (*s3.HeadObjectOutput, error) {
	f.heads = append(f.heads, aws.StringValue(in.Key))
	if _, ok := f.objects[aws.StringValue(in.Key)]; !ok {
		return nil, awserr.New("NotFound", "not found", nil)
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.StringValue(in.Key)]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func TestS3SourcePrefixesKeys(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"cutscenes/movies/c_berlin/sprite_sheet_000.png": []byte("png"),
	}}
	src := NewS3SourceWithClient(client, "bucket", "cutscenes")
	ctx := context.Background()

	if !src.Exists(ctx, "movies/c_berlin/sprite_sheet_000.png") {
		t.Error("expected prefixed key to exist")
	}
	if src.Exists(ctx, "movies/c_berlin/sprite_sheet_001.png") {
		t.Error("expected missing key")
	}
	if len(client.heads) != 2 || client.heads[0] != "cutscenes/movies/c_berlin/sprite_sheet_000.png" {
		t.Errorf("unexpected HEAD keys: %v", client.heads)
	}

	b, err := src.ReadAll(ctx, "movies/c_berlin/sprite_sheet_000.png")
	if err != nil || string(b) != "png" {
		t.Fatalf("ReadAll = %q, %v", b, err)
	}
	if _, err := src.ReadAll(ctx, "movies/c_berlin/audio.wav"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewS3SourceRequiresEnvironment(t *testing.T) {
	t.Setenv("AWS_DEFAULT_REGION", "")
	if _, err := NewS3Source("bucket", ""); err == nil {
		t.Error("expected an error without AWS credentials")
	}
	if _, err := NewS3Source("", ""); err == nil {
		t.Error("expected an error without a bucket")
	}
}
