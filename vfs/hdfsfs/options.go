package hdfsfs

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"os/user"
	"strconv"

	"github.com/colinmarc/hdfs/v2"
	"github.com/colinmarc/hdfs/v2/hadoopconf"
	krb "github.com/jcmturner/gokrb5/v8/client"
	krbconf "github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
)

// Options are the connection parameters for an HDFS cluster.
type Options struct {
	// Host is the namenode hostname or IP. Empty or "default" reads the
	// namenode address from the Hadoop configuration in the environment.
	Host string

	// Port is the namenode port, or the configured default when zero.
	Port int

	// User is the username to connect as. When empty and no Kerberos
	// ticket is given, the current OS user is used.
	User string

	// KerbTicket is the path to a Kerberos credentials cache to
	// authenticate with.
	KerbTicket string

	// ExtraConf entries override the loaded Hadoop configuration.
	ExtraConf map[string]string
}

// New connects to the cluster described by opts and returns a provider
// backed by it.
func New(opts Options) (*FileSystem, error) {
	conf, err := hadoopconf.LoadFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("hdfsfs: load hadoop config: %w", err)
	}
	if conf == nil {
		conf = hadoopconf.HadoopConf{}
	}
	for k, v := range opts.ExtraConf {
		conf[k] = v
	}

	clientOpts := hdfs.ClientOptionsFromConf(conf)
	if opts.Host != "" && opts.Host != "default" {
		addr := opts.Host
		if opts.Port != 0 {
			addr = net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))
		}
		clientOpts.Addresses = []string{addr}
	}
	if opts.User != "" {
		clientOpts.User = opts.User
	}
	if opts.KerbTicket != "" {
		kc, err := kerberosClient(opts.KerbTicket)
		if err != nil {
			return nil, fmt.Errorf("hdfsfs: load kerberos ticket: %w", err)
		}
		clientOpts.KerberosClient = kc
		if clientOpts.KerberosServicePrincipleName == "" {
			clientOpts.KerberosServicePrincipleName = "nn/_HOST"
		}
	}
	if clientOpts.User == "" && clientOpts.KerberosClient == nil {
		u, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("hdfsfs: resolve current user: %w", err)
		}
		clientOpts.User = u.Username
	}

	client, err := hdfs.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("hdfsfs: connect: %w", err)
	}
	return NewFromClient(client), nil
}

// kerberosClient builds a Kerberos client from a credentials cache.
func kerberosClient(ccachePath string) (*krb.Client, error) {
	confPath := os.Getenv("KRB5_CONFIG")
	if confPath == "" {
		confPath = "/etc/krb5.conf"
	}
	cfg, err := krbconf.Load(confPath)
	if err != nil {
		return nil, err
	}
	ccache, err := credentials.LoadCCache(ccachePath)
	if err != nil {
		return nil, err
	}
	return krb.NewFromCCache(ccache, cfg)
}

// OptionsFromURL derives connection parameters from the authority
// component of a URL such as "hdfs://user@namenode:8020/path".
// Components absent from the URL are left unset.
func OptionsFromURL(raw string) (Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Options{}, err
	}
	var opts Options
	if h := u.Hostname(); h != "" {
		opts.Host = h
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return Options{}, fmt.Errorf("hdfsfs: invalid port %q", p)
		}
		opts.Port = port
	}
	if u.User != nil {
		opts.User = u.User.Username()
	}
	return opts, nil
}
