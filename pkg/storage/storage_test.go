package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-booking/pkg/utils"
)

func TestLocalDisk(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	disk, err := NewLocalDisk(root, "/uploads/")
	require.NoError(t, err)

	path := "profile-pictures/u1.png"
	require.NoError(t, disk.Put(ctx, path, bytes.NewReader([]byte("png-bytes")), "image/png"))
	assert.True(t, disk.Exists(ctx, path))

	data, err := os.ReadFile(filepath.Join(root, "profile-pictures", "u1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	url := disk.URL(path)
	assert.Equal(t, "/uploads/profile-pictures/u1.png", url)

	back, ok := disk.PathFromURL(url)
	require.True(t, ok)
	assert.Equal(t, path, back)

	_, ok = disk.PathFromURL("https://lh3.googleusercontent.com/a/pic")
	assert.False(t, ok)
	_, ok = disk.PathFromURL("/uploads/../etc/passwd")
	assert.False(t, ok)

	require.NoError(t, disk.Delete(ctx, path))
	assert.False(t, disk.Exists(ctx, path))
	assert.NoError(t, disk.Delete(ctx, path), "deleting a missing file is not an error")
}

func TestLocalDiskStaysUnderRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	disk, err := NewLocalDisk(root, "/uploads")
	require.NoError(t, err)

	require.NoError(t, disk.Put(ctx, "../escape.txt", bytes.NewReader([]byte("x")), ""))
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.NoError(t, err)
}

type fakeS3 struct {
	put    *s3.PutObjectInput
	body   []byte
	delErr error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.put != nil && aws.ToString(in.Key) == aws.ToString(f.put.Key) {
		return &s3.HeadObjectOutput{}, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeS3) DeleteObject(_ context.Context, _ *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	return &s3.DeleteObjectOutput{}, f.delErr
}

func TestS3Disk(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{}
	disk := &S3Disk{client: fake, bucket: "travel", baseURL: "https://cdn.test"}

	require.NoError(t, disk.Put(ctx, "profile-pictures/u1.jpg", bytes.NewReader([]byte("jpg")), "image/jpeg"))
	assert.Equal(t, "travel", aws.ToString(fake.put.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(fake.put.ContentType))
	assert.Equal(t, "jpg", string(fake.body))
	assert.True(t, disk.Exists(ctx, "profile-pictures/u1.jpg"))
	assert.False(t, disk.Exists(ctx, "other.jpg"))

	url := disk.URL("profile-pictures/u1.jpg")
	assert.Equal(t, "https://cdn.test/profile-pictures/u1.jpg", url)
	path, ok := disk.PathFromURL(url)
	assert.True(t, ok)
	assert.Equal(t, "profile-pictures/u1.jpg", path)

	fake.delErr = errors.New("boom")
	assert.Error(t, disk.Delete(ctx, path))
}

func TestNewSelectsDriver(t *testing.T) {
	ctx := context.Background()

	disk, err := New(ctx, utils.StorageConfig{Driver: "local", LocalRoot: t.TempDir(), URL: "/uploads"})
	require.NoError(t, err)
	assert.IsType(t, &LocalDisk{}, disk)

	_, err = New(ctx, utils.StorageConfig{Driver: "s3"})
	assert.Error(t, err, "bucket is required")

	_, err = New(ctx, utils.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
