// Package fsd decodes the FSD (Flight Simulator Daemon) text protocol
// spoken between VATSIM pilot/controller clients and servers.
//
// It is a pure decoder: given a line of FSD text it produces a typed
// packet record, or reports that the line is not a recognized packet.
// It does no I/O and holds no network state; see package capture for
// that.
package fsd
