//go:build unix

// Package daemon controls the server running in the background. The process id is kept in
// the pid file, and the running server is driven by signals: SIGINT stops it, SIGUSR2 asks
// to reload.
package daemon

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// ReloadSignal is what the running server receives on reload.
const ReloadSignal = syscall.SIGUSR2

var (
	ErrAlreadyRunning = errors.New("already running")
	ErrNotRunning     = errors.New("not running")
	ErrStopTimeout    = errors.New("process didn't exit in time")
)

const pollPeriod = 20 * time.Millisecond

// Alive reports whether the process exists.
func Alive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}

// Running returns the pid from the file if the process behind it is alive.
func Running(pidfile string) (int, bool) {
	pid, err := ReadPID(pidfile)
	if err != nil || !Alive(pid) {
		return 0, false
	}

	return pid, true
}

// Start runs the executable with the arguments detached from the terminal, in a new
// session, and records its pid.
func Start(pidfile, executable string, argv ...string) (int, error) {
	if pid, running := Running(pidfile); running {
		return 0, fmt.Errorf("%w: pid %d", ErrAlreadyRunning, pid)
	}

	cmd := exec.Command(executable, argv...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return 0, err
	}

	pid := cmd.Process.Pid
	if err := WritePID(pidfile, pid); err != nil {
		_ = cmd.Process.Kill()
		return 0, err
	}

	return pid, cmd.Process.Release()
}

// Stop interrupts the recorded process and waits until it exits, at most timeout. The pid
// file is removed once the process is gone.
func Stop(pidfile string, timeout time.Duration) error {
	pid, running := Running(pidfile)
	if !running {
		_ = RemovePID(pidfile)
		return ErrNotRunning
	}

	if err := syscall.Kill(pid, syscall.SIGINT); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	for Alive(pid) {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: pid %d", ErrStopTimeout, pid)
		}

		time.Sleep(pollPeriod)
	}

	return RemovePID(pidfile)
}

// Reload notifies the recorded process with ReloadSignal.
func Reload(pidfile string) error {
	pid, running := Running(pidfile)
	if !running {
		return ErrNotRunning
	}

	return syscall.Kill(pid, ReloadSignal)
}

// Restart stops the recorded process, if any, and starts a new one.
func Restart(pidfile string, timeout time.Duration, executable string, argv ...string) (int, error) {
	if err := Stop(pidfile, timeout); err != nil && !errors.Is(err, ErrNotRunning) {
		return 0, err
	}

	return Start(pidfile, executable, argv...)
}

// Self returns the path to the running executable.
func Self() (string, error) {
	return os.Executable()
}
