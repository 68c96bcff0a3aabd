package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-ats/internal/shared/storage/object"
)

type fakeS3 struct {
	objects map[string][]byte
	puts    []*s3.PutObjectInput
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[aws.ToString(in.Key)] = data
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/file.pdf", want: "user/file.pdf"},
		{name: "simple prefix", prefix: "root", key: "user/file.pdf", want: "root/user/file.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/user/file.pdf", want: "root/user/file.pdf"},
		{name: "empty key", prefix: "root", key: "", want: "root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestSaveUploadsWithEncryptionAndPrefix(t *testing.T) {
	fake := &fakeS3{}
	store := newWithClient(fake, "bucket", "/resumes/", "kms-key")

	obj, err := store.Save(context.Background(), "user-1", "cv.txt", strings.NewReader("Jane Smith"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if obj.Size != int64(len("Jane Smith")) {
		t.Fatalf("unexpected size %d", obj.Size)
	}
	if len(fake.puts) != 1 {
		t.Fatalf("expected one put, got %d", len(fake.puts))
	}
	put := fake.puts[0]
	if got := aws.ToString(put.Key); got != "resumes/"+obj.Key {
		t.Fatalf("unexpected object key %q", got)
	}
	if put.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(put.SSEKMSKeyId) != "kms-key" {
		t.Fatalf("expected kms encryption, got %v", put.ServerSideEncryption)
	}

	rc, err := store.Open(context.Background(), obj.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "Jane Smith" {
		t.Fatalf("unexpected body %q", data)
	}
}

func TestSaveWithoutKMSUsesAES(t *testing.T) {
	fake := &fakeS3{}
	store := newWithClient(fake, "bucket", "", "")
	if _, err := store.SaveWithKey(context.Background(), "k.txt", "text/plain", strings.NewReader("x")); err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
	if fake.puts[0].ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256, got %v", fake.puts[0].ServerSideEncryption)
	}
}

func TestOpenMissingMapsToNotFound(t *testing.T) {
	store := newWithClient(&fakeS3{}, "bucket", "", "")
	_, err := store.Open(context.Background(), "missing")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
