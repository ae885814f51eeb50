//go:build linux
// +build linux

// File: transport/tune_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// tuneConn sets TCP_NODELAY and a receive low-water mark on the accepted
// connection before handing it to a Handshake, trimming the latency the
// handshake's small, frequent reads would otherwise pick up from Nagle's
// algorithm and default socket buffering.

package transport

import (
	"net"

	"golang.org/x/sys/unix"
)

const recvLowWaterMark = 1

func tuneConn(conn net.Conn) error {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}
	raw, err := tc.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		if e := unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1); e != nil {
			sockErr = e
			return
		}
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVLOWAT, recvLowWaterMark)
	})
	if err != nil {
		return err
	}
	return sockErr
}
