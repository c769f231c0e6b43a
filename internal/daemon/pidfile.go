//go:build unix

package daemon

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

var ErrBadPIDFile = errors.New("pid file doesn't contain a valid pid")

// WritePID stores the pid in the file, replacing any previous content.
func WritePID(filename string, pid int) error {
	return os.WriteFile(filename, []byte(strconv.Itoa(pid)+"\n"), 0o644)
}

// ReadPID reads the pid stored by WritePID.
func ReadPID(filename string) (int, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, ErrBadPIDFile
	}

	return pid, nil
}

// RemovePID removes the file. A missing file isn't an error.
func RemovePID(filename string) error {
	if err := os.Remove(filename); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
