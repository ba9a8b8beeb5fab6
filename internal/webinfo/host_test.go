package webinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var regionCounter atomic.Int64

// regionName returns a name that is unique across test runs, since region
// names on Windows live in a session-wide namespace.
func regionName(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("alicia-test-%d-%d", time.Now().UnixNano(), regionCounter.Add(1))
}

func TestHostPublish(t *testing.T) {
	dir := t.TempDir()
	host := NewHost(WithDirectory(dir))
	defer host.Close()

	id := regionName(t)
	info := sampleWebInfo()

	require.NoError(t, host.Publish(id, info))
	assert.True(t, host.Active())
	assert.Equal(t, id, host.ID())

	mapped, err := host.Bytes()
	require.NoError(t, err)
	assert.Equal(t, Marshal(info), mapped)

	read, err := ReadRegion(id, WithDirectory(dir))
	require.NoError(t, err)
	assert.Equal(t, info, read)

	raw, err := OpenRegion(id, WithDirectory(dir))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "|CityCode=03|")
}

func TestHostPublishReplacesPrevious(t *testing.T) {
	dir := t.TempDir()
	host := NewHost(WithDirectory(dir))
	defer host.Close()

	first := regionName(t)
	second := regionName(t)

	firstInfo := sampleWebInfo()
	secondInfo := sampleWebInfo()
	secondInfo.LoginID = "alice"

	require.NoError(t, host.Publish(first, firstInfo))
	require.NoError(t, host.Publish(second, secondInfo))

	assert.Equal(t, second, host.ID())

	_, err := OpenRegion(first, WithDirectory(dir))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, first))

	read, err := ReadRegion(second, WithDirectory(dir))
	require.NoError(t, err)
	assert.Equal(t, "alice", read.LoginID)
}

func TestHostReleaseIdle(t *testing.T) {
	host := NewHost(WithDirectory(t.TempDir()))

	assert.NotPanics(t, func() {
		host.Release()
		host.Release()
	})
	assert.NoError(t, host.Close())
	assert.False(t, host.Active())
	assert.Empty(t, host.ID())

	_, err := host.Bytes()
	assert.ErrorIs(t, err, ErrNotPublished)
}

func TestHostCloseRemovesBackingStore(t *testing.T) {
	dir := t.TempDir()
	host := NewHost(WithDirectory(dir))
	id := regionName(t)

	require.NoError(t, host.Publish(id, sampleWebInfo()))
	require.NoError(t, host.Close())

	assert.False(t, host.Active())
	assert.NoFileExists(t, filepath.Join(dir, id))
	_, err := OpenRegion(id, WithDirectory(dir))
	assert.Error(t, err)

	// The name is free to be published again.
	other := NewHost(WithDirectory(dir))
	defer other.Close()
	require.NoError(t, other.Publish(id, sampleWebInfo()))
	assert.True(t, other.Active())
}

func TestHostReleaseTwiceAfterPublish(t *testing.T) {
	host := NewHost(WithDirectory(t.TempDir()))
	require.NoError(t, host.Publish(regionName(t), sampleWebInfo()))

	host.Release()
	assert.NotPanics(t, host.Release)
	assert.False(t, host.Active())
}

func TestHostPublishInvalidName(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"Empty", ""},
		{"Forward slash", "a/b"},
		{"Backslash", `Local\alicia`},
		{"Parent directory", ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := NewHost(WithDirectory(t.TempDir()))
			err := host.Publish(tt.id, sampleWebInfo())

			assert.ErrorIs(t, err, ErrBackingStoreFailed)
			assert.ErrorIs(t, err, ErrInvalidRegionName)
			assert.False(t, host.Active())
		})
	}
}

func TestHostPublishBackingStoreFailure(t *testing.T) {
	// A regular file where the namespace directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	host := NewHost(WithDirectory(blocker))
	err := host.Publish(regionName(t), sampleWebInfo())
	require.Error(t, err)

	var pe *PublishError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, BackingStoreFailed, pe.Kind)
	assert.NotZero(t, pe.Code)
	assert.ErrorIs(t, err, ErrBackingStoreFailed)
	assert.NotErrorIs(t, err, ErrMappingFailed)
	assert.False(t, host.Active())
}

func TestHostFailedPublishReleasesPrevious(t *testing.T) {
	dir := t.TempDir()
	host := NewHost(WithDirectory(dir))
	id := regionName(t)

	require.NoError(t, host.Publish(id, sampleWebInfo()))
	require.Error(t, host.Publish("bad/name", sampleWebInfo()))

	assert.False(t, host.Active())
	assert.NoFileExists(t, filepath.Join(dir, id))
}

func TestPublishErrorMessage(t *testing.T) {
	err := newPublishError(MappingFailed, errors.New("boom"))
	assert.Equal(t, "couldn't create a named file mapping: boom", err.Error())
	assert.ErrorIs(t, err, ErrMappingFailed)
	assert.NotErrorIs(t, err, ErrInvalidBackingStore)
	assert.Equal(t, "mapping failed", err.Kind.String())
}
