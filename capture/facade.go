// facade.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package capture

import (
	"strings"
	"time"

	"github.com/vatsimnet/fsdtap/aggregate"
	"github.com/vatsimnet/fsdtap/fsd"
	vicelog "github.com/vatsimnet/fsdtap/log"
)

// Event is one classified, parsed FSD record.
type Event struct {
	Direction Direction
	Record    fsd.Record
}

// Facade owns a packet source, the server-IP set used for directional
// classification, and the two aggregators; it is the single entry
// point a consumer drives with repeated calls to Next.
//
// A host that wants multiple concurrent FSD sessions instantiates
// multiple Facades - there is no process-wide singleton state here.
type Facade struct {
	source Source
	server ServerSet
	queue  []Event
	trace  *TraceWriter

	Pilots      *aggregate.PilotAggregator
	Controllers *aggregate.ControllerAggregator

	log *vicelog.Logger
}

// NewFacade builds a Facade around source, classifying traffic against
// serverIPs. log may be nil, in which case parse failures and
// unclassified frames are simply discarded without being reported.
func NewFacade(source Source, serverIPs []string, log *vicelog.Logger) *Facade {
	return &Facade{
		source:      source,
		server:      NewServerSet(serverIPs),
		Pilots:      aggregate.NewPilotAggregator(10 * time.Minute),
		Controllers: aggregate.NewControllerAggregator(10 * time.Minute),
		log:         log,
	}
}

// SetTrace wires w in as the destination for every classified frame
// ingest sees from then on (frames with neither IP in the server set
// are not recorded), raw bytes and all, before any parsing happens - the
// only way a recorded trace stays replayable through ReplaySource and
// fsd.Parse. Pass nil to stop recording.
func (f *Facade) SetTrace(w *TraceWriter) {
	f.trace = w
}

// Next returns the next classified event, pulling and parsing further
// frames from the source as needed. ok is false only when the source
// is exhausted and the internal queue is empty; err reports a hard
// source failure, which Next does not retry.
func (f *Facade) Next() (ev Event, ok bool, err error) {
	for len(f.queue) == 0 {
		frame, sourceOK, ferr := f.source.Next()
		if ferr != nil {
			return Event{}, false, ferr
		}
		if !sourceOK {
			return Event{}, false, nil
		}
		f.ingest(frame)
	}

	ev, f.queue = f.queue[0], f.queue[1:]
	return ev, true, nil
}

// ingest classifies frame, parses every line in its payload, and
// enqueues a classified Event for each successfully parsed line. It
// also folds Server-originated records into the pilot and controller
// aggregators, since those are the only observations a real FSD
// session treats as authoritative position/registration updates.
func (f *Facade) ingest(frame Frame) {
	dir, ok := f.server.Classify(frame.SrcIP, frame.DstIP)
	if !ok {
		return
	}

	if f.trace != nil {
		if err := f.trace.Write(time.Now(), frame); err != nil {
			f.log.Warn("capture: recording trace", "error", err)
		}
	}

	for _, line := range strings.Split(string(frame.Payload), "\n") {
		if line == "" {
			continue
		}
		rec, err := fsd.Parse(line)
		if err != nil {
			if err != fsd.ErrNotAPacket {
				f.log.Warn("fsd: malformed line", "error", err, "line", line)
			}
			continue
		}

		if dir == DirectionServer {
			f.apply(rec)
		}
		f.queue = append(f.queue, Event{Direction: dir, Record: rec})
	}
}

// apply folds a decoded record into whichever aggregator it addresses.
// Record kinds that aren't tracked state (TextMessage, Metar, and so
// on) are simply passed through to the caller via the event queue.
func (f *Facade) apply(rec fsd.Record) {
	switch r := rec.(type) {
	case fsd.NetworkClient:
		if r.ClientType == fsd.ClientTypeATC {
			f.Controllers.ProcessClient(r)
		} else {
			f.Pilots.ProcessClient(r)
		}
	case fsd.DeleteClient:
		if r.ClientType == fsd.ClientTypeATC {
			f.Controllers.Delete(r.Callsign)
		} else {
			f.Pilots.Delete(r.Callsign)
		}
	case fsd.PilotPosition:
		f.Pilots.ProcessPosition(r)
	case fsd.ATCPosition:
		f.Controllers.ProcessPosition(r)
	case fsd.ClientQuery:
		if r.QueryType == fsd.QueryAircraftConfiguration && r.Payload.Kind == fsd.PayloadAircraftConfiguration {
			if err := f.Pilots.ProcessConfig(r.From, r.Payload.Configuration); err != nil {
				f.log.Warn("aggregate: configuration patch rejected", "error", err, "callsign", r.From)
			}
		}
	}
}
