// replay.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package capture

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
)

// capturedLine is one recorded frame, timestamped so a replay can
// reproduce the original pacing.
type capturedLine struct {
	Time    time.Time `json:"time"`
	SrcIP   string    `json:"src_ip"`
	DstIP   string    `json:"dst_ip"`
	Payload string    `json:"payload"`
}

// TraceWriter appends classified frames to a zstd-compressed,
// JSON-lines session trace, the same debugging/replay artifact a
// session-save prompt would offer at the end of a capture.
type TraceWriter struct {
	f   *os.File
	zw  *zstd.Encoder
	enc *json.Encoder
}

// NewTraceWriter creates (or truncates) filename and returns a writer
// ready to record frames.
func NewTraceWriter(filename string) (*TraceWriter, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("capture: creating trace file: %w", err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("capture: creating zstd writer: %w", err)
	}
	return &TraceWriter{f: f, zw: zw, enc: json.NewEncoder(zw)}, nil
}

// Write records one frame at the given timestamp.
func (w *TraceWriter) Write(t time.Time, frame Frame) error {
	return w.enc.Encode(capturedLine{
		Time:    t,
		SrcIP:   frame.SrcIP,
		DstIP:   frame.DstIP,
		Payload: string(frame.Payload),
	})
}

// Close flushes the zstd stream and closes the underlying file.
func (w *TraceWriter) Close() error {
	if err := w.zw.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// ReplaySource is a Source that reads frames back from a trace
// recorded by TraceWriter, at real-time pacing scaled by rate (1.0 =
// original speed, >1.0 = faster).
type ReplaySource struct {
	f     *os.File
	zr    *zstd.Decoder
	dec   *json.Decoder
	rate  float64
	start time.Time // wall-clock time this replay began
	base  time.Time // timestamp of the first recorded frame
	eof   bool
}

// NewReplaySource opens filename for replay.
func NewReplaySource(filename string, rate float64) (*ReplaySource, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("capture: opening trace file: %w", err)
	}
	zr, err := zstd.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("capture: creating zstd reader: %w", err)
	}
	if rate <= 0 {
		rate = 1.0
	}
	return &ReplaySource{f: f, zr: zr, dec: json.NewDecoder(zr), rate: rate}, nil
}

// Next blocks until the next recorded frame's scaled timestamp has
// arrived, then returns it.
func (r *ReplaySource) Next() (Frame, bool, error) {
	if r.eof {
		return Frame{}, false, nil
	}

	var line capturedLine
	if err := r.dec.Decode(&line); err != nil {
		r.eof = true
		if err == io.EOF {
			return Frame{}, false, nil
		}
		return Frame{}, false, fmt.Errorf("capture: decoding trace: %w", err)
	}

	if r.start.IsZero() {
		r.start = time.Now()
		r.base = line.Time
	} else {
		elapsed := time.Duration(float64(line.Time.Sub(r.base)) / r.rate)
		if wait := r.start.Add(elapsed).Sub(time.Now()); wait > 0 {
			time.Sleep(wait)
		}
	}

	return Frame{SrcIP: line.SrcIP, DstIP: line.DstIP, Payload: []byte(line.Payload)}, true, nil
}

// Close releases the trace file and its zstd decoder.
func (r *ReplaySource) Close() error {
	r.zr.Close()
	return r.f.Close()
}
