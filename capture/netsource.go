// netsource.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package capture

import (
	"bufio"
	"net"
	"strings"
)

// TCPSource is a demonstration Source that dials an FSD server directly
// and reads lines off the wire, rather than observing someone else's
// session passively. It exists so cmd/fsdtap has something concrete to
// run against; a real deployment supplies its own Source built from a
// link-layer capture (see Frame).
type TCPSource struct {
	conn   net.Conn
	reader *bufio.Reader
	srcIP  string
	dstIP  string
	closed bool
}

// DialTCPSource connects to address (host:port, ":6809" assumed if no
// port is given) and returns a Source that yields one Frame per line
// read from the connection.
func DialTCPSource(address string) (*TCPSource, error) {
	if !strings.Contains(address, ":") {
		address += ":6809"
	}

	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, err
	}

	srcIP := ""
	if host, _, splitErr := net.SplitHostPort(conn.RemoteAddr().String()); splitErr == nil {
		srcIP = host
	}
	dstIP := ""
	if host, _, splitErr := net.SplitHostPort(conn.LocalAddr().String()); splitErr == nil {
		dstIP = host
	}

	return &TCPSource{
		conn:   conn,
		reader: bufio.NewReader(conn),
		srcIP:  srcIP,
		dstIP:  dstIP,
	}, nil
}

// Next blocks until a line is available, returning it as a one-line
// Frame tagged with the remote peer as source and the local address as
// destination.
func (s *TCPSource) Next() (Frame, bool, error) {
	if s.closed {
		return Frame{}, false, ErrSourceClosed
	}

	line, err := s.reader.ReadString('\n')
	if err != nil {
		s.closed = true
		if line == "" {
			return Frame{}, false, err
		}
		// Fall through with whatever partial line was read before the
		// connection dropped; the caller still gets it classified.
	}

	return Frame{SrcIP: s.srcIP, DstIP: s.dstIP, Payload: []byte(line)}, true, nil
}

// Close releases the underlying TCP connection.
func (s *TCPSource) Close() error {
	s.closed = true
	return s.conn.Close()
}
