package loader

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger, buf
}

func TestLoad_Success(t *testing.T) {
	logger, buf := testLogger()

	res := Load(context.Background(), logger, "donor_chats", func(context.Context) ([]string, error) {
		return []string{"c", "a", "b"}, nil
	})

	assert.False(t, res.Failed())
	assert.False(t, res.Empty())
	assert.Equal(t, []string{"c", "a", "b"}, res.Records, "order is kept as returned")
	assert.Equal(t, 3, res.Len())
	assert.Empty(t, buf.String())
}

func TestLoad_EmptySuccess(t *testing.T) {
	logger, _ := testLogger()

	res := Load(context.Background(), logger, "donor_chats", func(context.Context) ([]int, error) {
		return nil, nil
	})

	assert.True(t, res.Empty())
	assert.False(t, res.Failed())
	assert.NotNil(t, res.Records)
}

func TestLoad_FailureIsLoggedAndEmpty(t *testing.T) {
	logger, buf := testLogger()
	boom := errors.New("connection refused")

	res := Load(context.Background(), logger, "home_chat_rooms", func(context.Context) ([]int, error) {
		return []int{1}, boom
	})

	require.True(t, res.Failed())
	assert.False(t, res.Empty(), "a failure is not an empty success")
	assert.ErrorIs(t, res.Err, boom)
	assert.Empty(t, res.Records)
	assert.NotNil(t, res.Records)
	assert.Contains(t, buf.String(), "home_chat_rooms")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestLoad_PassesContext(t *testing.T) {
	logger, _ := testLogger()
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	Load(ctx, logger, "x", func(got context.Context) ([]int, error) {
		assert.Equal(t, "v", got.Value(key{}))
		return nil, nil
	})
}
