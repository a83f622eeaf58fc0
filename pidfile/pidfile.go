// Package pidfile manages a PID file.
package pidfile

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
)

// PIDFile is the interface that pid file managers must implement.
type PIDFile interface {
	Remove() error
	ID() int
}

type pidfile struct {
	path string
	pid  int
}

func checkPIDFileAlreadyExists(path string) error {
	if pidString, err := ioutil.ReadFile(path); err == nil {
		if pid, err := strconv.Atoi(string(pidString)); err == nil {
			if _, err := os.Stat(filepath.Join("/proc", strconv.Itoa(pid))); err == nil {
				return fmt.Errorf("pid file found, ensure the daemon is not running or delete the pid file %s", path)
			}
		}
	}
	return nil
}

// New returns a pidfile or an error.
func New(path string) (PIDFile, error) {
	if err := checkPIDFileAlreadyExists(path); err != nil {
		return nil, err
	}
	if err := ioutil.WriteFile(path, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
		return nil, err
	}

	return &pidfile{path: path, pid: os.Getpid()}, nil
}

// Remove removes the pid file.
func (file pidfile) Remove() error {
	return os.Remove(file.path)
}

// ID returns the pid recorded in the pid file.
func (file pidfile) ID() int {
	return file.pid
}
