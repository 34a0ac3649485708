package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minInstancePort = 20000
	maxInstancePort = 39999
)

// InstanceGuard keeps a second desktop stopwatch from opening while one is
// already showing. It holds a loopback listener on a port derived from the
// application name.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds the loopback port for appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := InstanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener}, nil
}

// InstanceAddress returns the loopback address guarding appName.
func InstanceAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := uint32(maxInstancePort - minInstancePort + 1)
	port := minInstancePort + int(hash.Sum32()%rangeSize)
	return fmt.Sprintf("127.0.0.1:%d", port)
}

// Release frees the lock. It is safe to call on a nil guard.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}
