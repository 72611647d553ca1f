package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		conf, err := LoadConfig("testdata/config.yml")
		require.NoError(t, err)
		assert.Equal(t, "hdfs", conf.Backend)
		assert.True(t, conf.ReadOnly)
		assert.Equal(t, "namenode.example.com", conf.HDFS.Host)
		assert.Equal(t, 8020, conf.HDFS.Port)
		assert.Equal(t, "alice", conf.HDFS.User)
		assert.Equal(t, "/tmp/krb5cc_1000", conf.HDFS.KerbTicket)
		assert.Equal(t, "true", conf.HDFS.ExtraConf["dfs.client.use.datanode.hostname"])
		assert.Equal(t, "ap-northeast-1", conf.S3.Region)
		assert.Equal(t, "example-bucket", conf.S3.Bucket)
		assert.Equal(t, "data", conf.S3.Prefix)
	})

	t.Run("missing-backend", func(t *testing.T) {
		_, err := LoadConfig("testdata/config-nobackend.yml")
		assert.Error(t, err)
	})

	t.Run("missing-file", func(t *testing.T) {
		_, err := LoadConfig("testdata/no-such-file.yml")
		assert.Error(t, err)
	})
}
