package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/t-dias/libreoffice-online-repo/config"
	defaul "github.com/t-dias/libreoffice-online-repo/config/default"
	"github.com/t-dias/libreoffice-online-repo/config/etcd"
	"github.com/t-dias/libreoffice-online-repo/config/file"
	"github.com/t-dias/libreoffice-online-repo/daemon"
	"github.com/t-dias/libreoffice-online-repo/pidfile"
)

const productName = "wopid"

func main() {
	flags := struct {
		pidFile      string
		config       string
		etcdURLs     string
		etcdKey      string
		etcdUsername string
		etcdPassword string
	}{}
	flag.StringVar(&flags.pidFile, "pidfile", fmt.Sprintf("/var/run/%s.pid", productName), "PID file location")
	flag.StringVar(&flags.config, "config", "", "Configuration file location")
	flag.StringVar(&flags.etcdURLs, "etcdurls", "", "Comma delimited list of etcd urls to load configuration from")
	flag.StringVar(&flags.etcdKey, "etcdkey", "", "etcd key holding the configuration")
	flag.StringVar(&flags.etcdUsername, "etcdusername", "", "etcd username")
	flag.StringVar(&flags.etcdPassword, "etcdpassword", "", "etcd password")
	flag.Parse()

	pid, err := pidfile.New(flags.pidFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer pid.Remove()

	// later sources override earlier ones
	sources := []config.Source{defaul.New()}
	if flags.config != "" {
		sources = append(sources, file.New(flags.config))
	}
	if flags.etcdURLs != "" {
		etcdSource, err := etcd.New(flags.etcdURLs, flags.etcdKey, flags.etcdUsername, flags.etcdPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		sources = append(sources, etcdSource)
	}

	conf := config.New(sources)
	if err := conf.LoadDirectives(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	d, err := daemon.New(conf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	d.Start()
	stopChan := d.TrapSignals()
	if err := <-stopChan; err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
