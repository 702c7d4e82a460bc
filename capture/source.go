// source.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package capture drives the fsd parser and aggregate package from a
// stream of reassembled FSD session frames: it classifies each frame
// as server- or client-originated, parses every line it carries, and
// hands the caller one classified event at a time.
package capture

import "errors"

// Frame is the reassembled payload of one Ethernet/IPv4/TCP segment
// carrying FSD traffic, as produced by an external capture collaborator
// (see the package doc comment; this package has no opinion on how the
// frame was reassembled from the wire).
type Frame struct {
	SrcIP   string
	DstIP   string
	Payload []byte
}

// Source yields frames one at a time. Next returns io.EOF-equivalent
// behavior through the ok return: a false ok means the source is
// exhausted, not that this particular pull failed; callers distinguish
// hard failures via err.
type Source interface {
	Next() (frame Frame, ok bool, err error)
}

// ErrSourceClosed is returned by a Source implementation's Next after
// Close has been called; TCPSource also returns it after a read from
// its connection has failed.
var ErrSourceClosed = errors.New("capture: source closed")
