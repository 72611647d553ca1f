package hdfsfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromURL(t *testing.T) {
	t.Run("full-authority", func(t *testing.T) {
		opts, err := OptionsFromURL("hdfs://alice@namenode:8020/user/alice")
		require.NoError(t, err)
		assert.Equal(t, "namenode", opts.Host)
		assert.Equal(t, 8020, opts.Port)
		assert.Equal(t, "alice", opts.User)
	})

	t.Run("host-only", func(t *testing.T) {
		opts, err := OptionsFromURL("hdfs://namenode/user/alice")
		require.NoError(t, err)
		assert.Equal(t, "namenode", opts.Host)
		assert.Zero(t, opts.Port)
		assert.Empty(t, opts.User)
	})

	t.Run("no-authority", func(t *testing.T) {
		opts, err := OptionsFromURL("hdfs:///user/alice")
		require.NoError(t, err)
		assert.Equal(t, Options{}, opts)
	})

	t.Run("invalid-port", func(t *testing.T) {
		_, err := OptionsFromURL("hdfs://namenode:http/user")
		assert.Error(t, err)
	})
}
