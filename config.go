package main

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config is a configure of vfsbridge.
type Config struct {
	// Backend selects the storage: "hdfs", "s3" or "mem".
	Backend string `yaml:"backend"`

	// ReadOnly rejects all write operations.
	ReadOnly bool `yaml:"readonly"`

	HDFS HDFSConfig `yaml:"hdfs"`
	S3   S3Config   `yaml:"s3"`
}

// HDFSConfig is a configure of the HDFS backend.
type HDFSConfig struct {
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	User       string            `yaml:"user"`
	KerbTicket string            `yaml:"kerb_ticket"`
	ExtraConf  map[string]string `yaml:"extra_conf"`
}

// S3Config is a configure of the S3 backend.
type S3Config struct {
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// LoadConfig loads a configure file.
func LoadConfig(path string) (*Config, error) {
	var conf Config
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&conf); err != nil {
		return nil, err
	}
	if conf.Backend == "" {
		return nil, fmt.Errorf("backend is missing in %s", path)
	}
	return &conf, nil
}
