package bleve

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/apidex/apidex"
)

// writeLock is an advisory PID lock file guarding the single-writer rule.
// A second writer fails fast instead of corrupting shared index state.
// Locks left behind by dead processes are cleaned up on acquisition.
type writeLock struct {
	path string
}

func acquireWriteLock(path string) (*writeLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(os.Getpid()))
			f.Close()
			if werr != nil {
				os.Remove(path)
				return nil, werr
			}
			return &writeLock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}

		// A lock held by the current process is a live second writer,
		// not a stale leftover, so it conflicts like any other PID.
		pid, ok := readLockPID(path)
		if ok && isProcessRunning(pid) {
			return nil, apidex.Errorf(apidex.ECONFLICT,
				"index is locked by an active writer (pid %d)", pid)
		}

		// Stale or corrupted lock: remove and retry once.
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	return nil, apidex.Errorf(apidex.ECONFLICT, "could not acquire index write lock")
}

func (l *writeLock) release() {
	if pid, ok := readLockPID(l.path); !ok || pid == os.Getpid() {
		os.Remove(l.path)
	}
}

func readLockPID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return pid, true
}

// isProcessRunning probes a PID with signal 0. Errors other than "no such
// process" are treated as running, which keeps the check conservative.
func isProcessRunning(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = p.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return !errors.Is(err, os.ErrProcessDone) && !strings.Contains(err.Error(), "no such process")
}
