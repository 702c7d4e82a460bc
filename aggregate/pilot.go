// pilot.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aggregate

import (
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/vatsimnet/fsdtap/fsd"
	"github.com/vatsimnet/fsdtap/util"
)

// Pilot is one callsign's accumulated state: at most one of each slot,
// any combination of which may be unset (invariant (b) in §3: at least
// one slot is non-empty, which the aggregator enforces by only ever
// creating a Pilot when a process_* call addresses one of its slots).
type Pilot struct {
	Client *fsd.NetworkClient
	Position *fsd.PilotPosition
	Config *AircraftConfiguration
}

// PilotAggregator keeps one Pilot per callsign. It never expires an
// entry on its own; the backing cache's default TTL is
// cache.NoExpiration, and ExpireIn is the only way an entry leaves
// except for an explicit Delete.
type PilotAggregator struct {
	pilots *cache.Cache
}

// NewPilotAggregator returns an aggregator whose entries never expire
// unless ExpireIn is called for a particular callsign. cleanupInterval
// only controls how often the underlying cache sweeps expired items;
// it has no effect on callsigns that were never given a TTL.
func NewPilotAggregator(cleanupInterval time.Duration) *PilotAggregator {
	return &PilotAggregator{pilots: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (a *PilotAggregator) upsert(callsign string, mutate func(*Pilot)) {
	var p Pilot
	if existing, ok := a.pilots.Get(callsign); ok {
		p = existing.(Pilot)
	}
	mutate(&p)
	a.pilots.SetDefault(callsign, p)
}

// ProcessClient upserts the NetworkClient slot for rec.Callsign,
// leaving any other slot untouched.
func (a *PilotAggregator) ProcessClient(rec fsd.NetworkClient) {
	a.upsert(rec.Callsign, func(p *Pilot) {
		r := rec
		p.Client = &r
	})
}

// ProcessPosition upserts the PilotPosition slot for rec.Callsign.
func (a *PilotAggregator) ProcessPosition(rec fsd.PilotPosition) {
	a.upsert(rec.Callsign, func(p *Pilot) {
		r := rec
		p.Position = &r
	})
}

// ProcessConfig applies patch to callsign's AircraftConfiguration slot,
// creating one lazily if this is the first configuration observation
// for that callsign.
func (a *PilotAggregator) ProcessConfig(callsign string, patch json.RawMessage) error {
	var applyErr error
	a.upsert(callsign, func(p *Pilot) {
		if p.Config == nil {
			p.Config = NewAircraftConfiguration()
		}
		applyErr = p.Config.ApplyPatch(patch)
	})
	return applyErr
}

// GetClient returns the last NetworkClient observed for callsign.
func (a *PilotAggregator) GetClient(callsign string) (fsd.NetworkClient, bool) {
	p, ok := a.get(callsign)
	if !ok || p.Client == nil {
		return fsd.NetworkClient{}, false
	}
	return *p.Client, true
}

// GetPosition returns the last PilotPosition observed for callsign.
func (a *PilotAggregator) GetPosition(callsign string) (fsd.PilotPosition, bool) {
	p, ok := a.get(callsign)
	if !ok || p.Position == nil {
		return fsd.PilotPosition{}, false
	}
	return *p.Position, true
}

// GetConfig returns the last AircraftConfiguration observed for
// callsign.
func (a *PilotAggregator) GetConfig(callsign string) (AircraftConfiguration, bool) {
	p, ok := a.get(callsign)
	if !ok || p.Config == nil {
		return AircraftConfiguration{}, false
	}
	return *p.Config, true
}

func (a *PilotAggregator) get(callsign string) (Pilot, bool) {
	v, ok := a.pilots.Get(callsign)
	if !ok {
		return Pilot{}, false
	}
	return v.(Pilot), true
}

// NumberTracked returns the number of distinct callsigns currently
// tracked.
func (a *PilotAggregator) NumberTracked() int {
	return a.pilots.ItemCount()
}

// Callsigns returns every tracked callsign, sorted, so that callers
// iterating a snapshot get deterministic output regardless of the
// backing cache's randomized map iteration.
func (a *PilotAggregator) Callsigns() []string {
	return util.SortedMapKeys(a.pilots.Items())
}

// Delete removes callsign's aggregate unconditionally, whether or not
// it was present.
func (a *PilotAggregator) Delete(callsign string) {
	a.pilots.Delete(callsign)
}

// ExpireIn opts callsign into operator-driven eviction: its aggregate
// will be dropped after d even without an explicit Delete or
// DeleteClient observation. It is a no-op if callsign isn't tracked.
// The TTL does not survive a later ProcessClient, ProcessPosition or
// ProcessConfig for callsign: each of those stores the entry again with
// no expiration.
func (a *PilotAggregator) ExpireIn(callsign string, d time.Duration) {
	if p, ok := a.get(callsign); ok {
		a.pilots.Set(callsign, p, d)
	}
}
