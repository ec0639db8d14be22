package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fotos")
	s := NewLocalStorage(dir, "http://localhost:3000")
	require.NoError(t, s.Init())

	url, err := s.Save(context.Background(), ".png", strings.NewReader("not really a png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:3000/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "http://localhost:3000/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "not really a png", string(data))
}

func TestLocalStorageSaveCancelledContext(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "http://localhost:3000")
	require.NoError(t, s.Init())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Save(ctx, ".jpg", strings.NewReader("x"))
	assert.Error(t, err)
}
