//go:build !windows
// +build !windows

package network

// Nothing to initialize: sockets are available as soon as process starts.

func platformStartup() error {
	return nil
}

func platformCleanup() error {
	return nil
}
