package utils

import (
	"context"
	"fmt"
	"net"
	"time"
)

// CheckPortConnectable reports whether something is listening on the port.
func CheckPortConnectable(port int) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("localhost", fmt.Sprintf("%d", port)), time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

/**
 * Wait until the port accepts connections
 * @param {context.Context} ctx - Context bounding the wait
 * @param {int} port - Port to probe
 * @returns {error} Returns nil once connectable, ctx.Err() on timeout/cancel
 */
func WaitPortReady(ctx context.Context, port int) error {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if CheckPortConnectable(port) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
