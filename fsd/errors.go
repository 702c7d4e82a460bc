// errors.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fsd

import "errors"

// ErrNotAPacket is returned by Parse when a line is not a recognized FSD
// command: bad prefix, unknown command or sub-command, empty input, no
// colon, or a non-ASCII lead. It is the dominant outcome on real traffic
// and callers should treat it as "skip this line", not as an anomaly.
var ErrNotAPacket = errors.New("fsd: not a recognized packet")

// MalformedLineError reports a field-level contract violation within a
// line whose prefix and command were recognized: a numeric field that
// didn't parse, or fewer fields than the command requires. Unlike
// ErrNotAPacket, this is a fatal condition for the line - the command
// tag promised a payload shape that the wire didn't deliver.
type MalformedLineError struct {
	Command string
	Reason  string
}

func (e MalformedLineError) Error() string {
	return "fsd: malformed " + e.Command + " line: " + e.Reason
}
