package daemon

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/t-dias/libreoffice-online-repo/config"
	"github.com/t-dias/libreoffice-online-repo/helpers"
	"github.com/t-dias/libreoffice-online-repo/server"
)

// Daemon runs the server and reacts to system signals.
type Daemon struct {
	log      *logrus.Entry
	srv      *server.Server
	conf     *config.Config
	stopChan chan error
	trapChan chan os.Signal
}

// New returns a new Daemon.
func New(conf *config.Config) (*Daemon, error) {
	srv, err := server.New(conf)
	if err != nil {
		return nil, err
	}
	return &Daemon{
		log:      helpers.GetAppLogger(conf).WithField("module", "daemon"),
		srv:      srv,
		conf:     conf,
		stopChan: make(chan error, 1),
		trapChan: make(chan os.Signal, 1),
	}, nil
}

// Start runs the server in the background. Failures surface on the
// channel returned by TrapSignals.
func (d *Daemon) Start() {
	d.log.Info("daemon will start web server")
	go func() {
		if err := d.srv.Start(); err != nil {
			d.stopChan <- err
		}
	}()
}

// TrapSignals captures system signals to control the daemon: SIGINT and
// SIGTERM stop it hard, SIGQUIT drains connections first and SIGHUP
// reloads the configuration.
func (d *Daemon) TrapSignals() chan error {
	go func() {
		signal.Notify(d.trapChan,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGHUP,
			syscall.SIGQUIT,
		)

		for {
			sig := <-d.trapChan
			switch sig {
			case syscall.SIGHUP:
				if err := d.conf.LoadDirectives(); err != nil {
					d.log.WithField("signal", "SIGHUP").WithError(err).Error("cannot reload configuration")
				} else {
					d.log.WithField("signal", "SIGHUP").Info("configuration reloaded")
				}
			case syscall.SIGINT:
				d.log.WithField("signal", "SIGINT").Warn("server will perform a hard shutdown. Consider to send SIGQUIT instead")
				d.stopChan <- nil
			case syscall.SIGTERM:
				d.log.WithField("signal", "SIGTERM").Warn("server will perform a hard shutdown. Consider to send SIGQUIT instead")
				d.stopChan <- nil
			case syscall.SIGQUIT:
				d.log.WithField("signal", "SIGQUIT").Infof("server will perform a graceful shutdown. Timeout is %d seconds",
					d.conf.GetDirectives().Server.ShutdownTimeout)
				go func() {
					<-d.srv.StopChan()
					d.log.WithField("signal", "SIGQUIT").Info("graceful shutdown complete")
					d.stopChan <- nil
				}()
				d.srv.Stop()
			}
		}
	}()
	d.log.Info("daemon enabled capture of system signals: SIGINT, SIGTERM, SIGHUP and SIGQUIT")
	return d.stopChan
}
