package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	config    string
	verbose   bool
	recursive bool
)

func init() {
	flag.StringVar(&config, "config", "", "the path to the configure file")
	flag.BoolVar(&verbose, "verbose", false, "log every file system operation")
	flag.BoolVar(&recursive, "r", false, "remove directories recursively")
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) > 0 && args[0] == "version" {
		fmt.Println(getVersion())
		return
	}
	if config == "" {
		logrus.Fatal("-config is missing.")
	}

	c, err := LoadConfig(config)
	if err != nil {
		logrus.WithError(err).Fatal("fail to load config")
	}
	if err := Run(c, args); err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}
