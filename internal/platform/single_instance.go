package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another window already times the same run.
var ErrAlreadyRunning = errors.New("run already open")

const (
	minLockPort = 20000
	maxLockPort = 39999
)

// RunLock keeps a second window from timing the same run file.
type RunLock struct {
	listener net.Listener
}

// LockRun binds a localhost port derived from appName and runKey. Different
// run files get different ports, so they can be timed side by side.
func LockRun(appName, runKey string) (*RunLock, error) {
	address := fmt.Sprintf("127.0.0.1:%d", lockPort(appName+"\x00"+runKey))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", runKey, ErrAlreadyRunning)
	}
	return &RunLock{listener: listener}, nil
}

// Release frees the lock. It is safe on a nil lock.
func (lock *RunLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	return lock.listener.Close()
}

func lockPort(key string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	return minLockPort + int(hash.Sum32()%uint32(maxLockPort-minLockPort+1))
}
