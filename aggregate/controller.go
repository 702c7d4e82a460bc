// controller.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aggregate

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/vatsimnet/fsdtap/fsd"
	"github.com/vatsimnet/fsdtap/util"
)

// Controller is one callsign's accumulated ATC state.
type Controller struct {
	Client   *fsd.NetworkClient
	Position *fsd.ATCPosition
}

// ControllerAggregator is the ATC-side counterpart of PilotAggregator;
// see its docs for the upsert and eviction semantics, which are
// identical.
type ControllerAggregator struct {
	controllers *cache.Cache
}

// NewControllerAggregator returns an aggregator whose entries never
// expire unless ExpireIn is called for a particular callsign.
func NewControllerAggregator(cleanupInterval time.Duration) *ControllerAggregator {
	return &ControllerAggregator{controllers: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (a *ControllerAggregator) upsert(callsign string, mutate func(*Controller)) {
	var c Controller
	if existing, ok := a.controllers.Get(callsign); ok {
		c = existing.(Controller)
	}
	mutate(&c)
	a.controllers.SetDefault(callsign, c)
}

// ProcessClient upserts the NetworkClient slot for rec.Callsign.
func (a *ControllerAggregator) ProcessClient(rec fsd.NetworkClient) {
	a.upsert(rec.Callsign, func(c *Controller) {
		r := rec
		c.Client = &r
	})
}

// ProcessPosition upserts the ATCPosition slot for rec.Callsign.
func (a *ControllerAggregator) ProcessPosition(rec fsd.ATCPosition) {
	a.upsert(rec.Callsign, func(c *Controller) {
		r := rec
		c.Position = &r
	})
}

// GetClient returns the last NetworkClient observed for callsign.
func (a *ControllerAggregator) GetClient(callsign string) (fsd.NetworkClient, bool) {
	c, ok := a.get(callsign)
	if !ok || c.Client == nil {
		return fsd.NetworkClient{}, false
	}
	return *c.Client, true
}

// GetPosition returns the last ATCPosition observed for callsign.
func (a *ControllerAggregator) GetPosition(callsign string) (fsd.ATCPosition, bool) {
	c, ok := a.get(callsign)
	if !ok || c.Position == nil {
		return fsd.ATCPosition{}, false
	}
	return *c.Position, true
}

func (a *ControllerAggregator) get(callsign string) (Controller, bool) {
	v, ok := a.controllers.Get(callsign)
	if !ok {
		return Controller{}, false
	}
	return v.(Controller), true
}

// NumberTracked returns the number of distinct callsigns currently
// tracked.
func (a *ControllerAggregator) NumberTracked() int {
	return a.controllers.ItemCount()
}

// Callsigns returns every tracked callsign, sorted, so that callers
// iterating a snapshot get deterministic output regardless of the
// backing cache's randomized map iteration.
func (a *ControllerAggregator) Callsigns() []string {
	return util.SortedMapKeys(a.controllers.Items())
}

// Delete removes callsign's aggregate unconditionally.
func (a *ControllerAggregator) Delete(callsign string) {
	a.controllers.Delete(callsign)
}

// ExpireIn opts callsign into operator-driven eviction after d. A later
// ProcessClient or ProcessPosition for callsign stores the entry again
// with no expiration.
func (a *ControllerAggregator) ExpireIn(callsign string, d time.Duration) {
	if c, ok := a.get(callsign); ok {
		a.controllers.Set(callsign, c, d)
	}
}
