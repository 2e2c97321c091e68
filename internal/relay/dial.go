package relay

import (
	"fmt"
	"net"
	"strconv"
)

// ConnectError reports a failed TCP connect to a bridge target port.
type ConnectError struct {
	Port int
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect localhost:%d: %v", e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Dial opens the TCP leg of a session. The port is already validated by the
// caller; OS defaults apply for connect timeout and backlog.
func Dial(port int) (net.Conn, error) {
	c, err := net.Dial("tcp", net.JoinHostPort("localhost", strconv.Itoa(port)))
	if err != nil {
		return nil, &ConnectError{Port: port, Err: err}
	}
	return c, nil
}
