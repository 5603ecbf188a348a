//go:build !windows
// +build !windows

package network

import "golang.org/x/sys/unix"

const (
	optSendBuffer    = unix.SO_SNDBUF //nolint: nosnakecase
	optReceiveBuffer = unix.SO_RCVBUF //nolint: nosnakecase
)

func setsockoptInt(fd uintptr, option, value int) error {
	return unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, option, value) //nolint: nosnakecase, wrapcheck
}

func getsockoptInt(fd uintptr, option int) (int, error) {
	return unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, option) //nolint: nosnakecase, wrapcheck
}
