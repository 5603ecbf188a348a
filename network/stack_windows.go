//go:build windows
// +build windows

package network

import "golang.org/x/sys/windows"

// MAKEWORD(2, 2)
const winsockVersion = 0x0202

func platformStartup() error {
	var data windows.WSAData

	return windows.WSAStartup(winsockVersion, &data) //nolint: wrapcheck
}

func platformCleanup() error {
	return windows.WSACleanup() //nolint: wrapcheck
}
