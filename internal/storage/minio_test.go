package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"imageapi/internal/config"
)

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		msg  string
	}{
		{name: "missing endpoint", cfg: config.MinIOConfig{}, msg: "endpoint is required"},
		{name: "missing credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000"}, msg: "credentials are required"},
		{name: "missing bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, msg: "bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewMinIO(tt.cfg)
			assert.Nil(t, st)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestMapMinIOError(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	assert.ErrorIs(t, mapMinIOError("k", notFound), ErrObjectNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapMinIOError("k", other))
}

func TestMinIO_RejectsInvalidKeysBeforeNetwork(t *testing.T) {
	cli, err := newMinIOClient(config.MinIOConfig{Endpoint: "127.0.0.1:1", AccessKey: "a", SecretKey: "b"})
	assert.NoError(t, err)
	st := &minioStorage{client: cli, bucket: "files"}

	for _, key := range []string{"", "..", "a/b.png", `a\b.png`} {
		_, err := st.Put(context.Background(), key, strings.NewReader("x"), PutObjectOptions{Size: 1})
		assert.ErrorIs(t, err, ErrInvalidKey, key)

		_, _, err = st.Get(context.Background(), key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}
