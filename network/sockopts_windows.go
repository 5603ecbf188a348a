//go:build windows
// +build windows

package network

import "golang.org/x/sys/windows"

const (
	optSendBuffer    = windows.SO_SNDBUF
	optReceiveBuffer = windows.SO_RCVBUF
)

func setsockoptInt(fd uintptr, option, value int) error {
	return windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, option, value) //nolint: wrapcheck
}

func getsockoptInt(fd uintptr, option int) (int, error) {
	return windows.GetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, option) //nolint: wrapcheck
}
