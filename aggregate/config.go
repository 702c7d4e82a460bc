// config.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package aggregate folds the decoded event stream into per-callsign
// pilot and controller state: one record per callsign, updated slot by
// slot as new observations arrive.
package aggregate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"
)

// Lights holds an aircraft's exterior lighting state.
type Lights struct {
	Strobe  bool
	Landing bool
	Beacon  bool
	Nav     bool
	Logo    bool
}

// Engine is one engine's run state, keyed by engine id in
// AircraftConfiguration.Engines.
type Engine struct {
	On bool
}

// AircraftConfiguration is the live cockpit-state snapshot a pilot
// client reports via ClientQuery AircraftConfiguration payloads. It is
// built up by successive JSON patches, never replaced wholesale.
type AircraftConfiguration struct {
	Lights      Lights
	Engines     orderedmap.OrderedMap
	FlapsPct    uint
	GearDown    bool
	SpoilersOut bool
	OnGround    bool
}

// NewAircraftConfiguration returns a zero-valued configuration: all
// booleans false, FlapsPct 0, no engines recorded.
func NewAircraftConfiguration() *AircraftConfiguration {
	return &AircraftConfiguration{Engines: *orderedmap.New()}
}

// patchKeyPriority is the first-match order from the folder's
// specification: a patch is assumed to carry a single logical change,
// but if more than one top-level key is present, the earliest one in
// this list wins and the rest are ignored.
var patchKeyPriority = []string{"lights", "engines", "flaps_pct", "gear_down", "spoilers_out", "on_ground"}

// ApplyPatch applies the first key (in patchKeyPriority order) present
// in raw to the configuration, ignoring any other keys in the same
// patch.
func (c *AircraftConfiguration) ApplyPatch(raw json.RawMessage) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return fmt.Errorf("aggregate: malformed configuration patch: %w", err)
	}

	for _, key := range patchKeyPriority {
		val, ok := top[key]
		if !ok {
			continue
		}
		switch key {
		case "lights":
			return c.applyLights(val)
		case "engines":
			return c.applyEngines(val)
		case "flaps_pct":
			return json.Unmarshal(val, &c.FlapsPct)
		case "gear_down":
			return json.Unmarshal(val, &c.GearDown)
		case "spoilers_out":
			return json.Unmarshal(val, &c.SpoilersOut)
		case "on_ground":
			return json.Unmarshal(val, &c.OnGround)
		}
	}
	return nil
}

func (c *AircraftConfiguration) applyLights(raw json.RawMessage) error {
	var patch struct {
		StrobeOn  *bool `json:"strobe_on"`
		BeaconOn  *bool `json:"beacon_on"`
		NavOn     *bool `json:"nav_on"`
		LandingOn *bool `json:"landing_on"`
		LogoOn    *bool `json:"logo_on"`
	}
	if err := json.Unmarshal(raw, &patch); err != nil {
		return fmt.Errorf("aggregate: malformed lights patch: %w", err)
	}
	if patch.StrobeOn != nil {
		c.Lights.Strobe = *patch.StrobeOn
	}
	if patch.BeaconOn != nil {
		c.Lights.Beacon = *patch.BeaconOn
	}
	if patch.NavOn != nil {
		c.Lights.Nav = *patch.NavOn
	}
	if patch.LandingOn != nil {
		c.Lights.Landing = *patch.LandingOn
	}
	if patch.LogoOn != nil {
		c.Lights.Logo = *patch.LogoOn
	}
	return nil
}

// applyEngines walks the engines patch token by token, in the textual
// order the keys appear in raw, rather than decoding into a plain Go
// map first: a plain map would randomize the multi-engine case
// (patches touching more than one engine id in one message) before
// the ordered Engines field ever saw it.
func (c *AircraftConfiguration) applyEngines(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))

	start, err := dec.Token()
	if err != nil {
		return fmt.Errorf("aggregate: malformed engines patch: %w", err)
	}
	if d, ok := start.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("aggregate: malformed engines patch: expected an object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("aggregate: malformed engines patch: %w", err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("aggregate: malformed engines patch: non-string engine id")
		}

		var upd struct {
			On *bool `json:"on"`
		}
		if err := dec.Decode(&upd); err != nil {
			return fmt.Errorf("aggregate: malformed engines patch: %w", err)
		}

		var eng Engine
		if existing, ok := c.Engines.Get(id); ok {
			eng = existing.(Engine)
		}
		if upd.On != nil {
			eng.On = *upd.On
		}
		c.Engines.Set(id, eng)
	}

	_, err = dec.Token() // closing '}'
	return err
}
