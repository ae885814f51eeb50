//go:build !linux
// +build !linux

// File: transport/tune_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-Linux stub: TCP_NODELAY/SO_RCVLOWAT tuning is Linux-specific
// (golang.org/x/sys/unix), so other platforms run with OS defaults.

package transport

import "net"

func tuneConn(conn net.Conn) error {
	return nil
}
