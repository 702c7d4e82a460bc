// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aggregate

import "testing"

func TestApplyPatchLights(t *testing.T) {
	c := NewAircraftConfiguration()
	if err := c.ApplyPatch([]byte(`{"lights": {"strobe_on": true, "nav_on": true}}`)); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	if !c.Lights.Strobe || !c.Lights.Nav || c.Lights.Beacon {
		t.Errorf("lights = %+v", c.Lights)
	}
}

func TestApplyPatchEnginesInsertAndUpdate(t *testing.T) {
	c := NewAircraftConfiguration()
	if err := c.ApplyPatch([]byte(`{"engines": {"0": {"on": true}}}`)); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	v, ok := c.Engines.Get("0")
	if !ok || !v.(Engine).On {
		t.Fatalf("engine 0 = %+v, %v", v, ok)
	}

	if err := c.ApplyPatch([]byte(`{"engines": {"0": {"on": false}, "1": {"on": true}}}`)); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	v, _ = c.Engines.Get("0")
	if v.(Engine).On {
		t.Errorf("engine 0 should be off after update")
	}
	v, ok = c.Engines.Get("1")
	if !ok || !v.(Engine).On {
		t.Errorf("engine 1 = %+v, %v", v, ok)
	}
}

func TestApplyPatchEnginesPreservesPatchOrder(t *testing.T) {
	c := NewAircraftConfiguration()
	if err := c.ApplyPatch([]byte(`{"engines": {"2": {"on": true}, "1": {"on": false}, "0": {"on": true}}}`)); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	got := c.Engines.Keys()
	want := []string{"2", "1", "0"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

func TestApplyPatchFirstKeyWins(t *testing.T) {
	c := NewAircraftConfiguration()
	// Both "lights" and "gear_down" present: priority order picks lights.
	if err := c.ApplyPatch([]byte(`{"gear_down": true, "lights": {"beacon_on": true}}`)); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	if c.GearDown {
		t.Errorf("gear_down should not have been applied")
	}
	if !c.Lights.Beacon {
		t.Errorf("lights.beacon_on should have been applied")
	}
}

func TestApplyPatchScalarFields(t *testing.T) {
	for _, tc := range []struct {
		patch string
		check func(*AircraftConfiguration) bool
	}{
		{`{"flaps_pct": 75}`, func(c *AircraftConfiguration) bool { return c.FlapsPct == 75 }},
		{`{"gear_down": true}`, func(c *AircraftConfiguration) bool { return c.GearDown }},
		{`{"spoilers_out": true}`, func(c *AircraftConfiguration) bool { return c.SpoilersOut }},
		{`{"on_ground": true}`, func(c *AircraftConfiguration) bool { return c.OnGround }},
	} {
		c := NewAircraftConfiguration()
		if err := c.ApplyPatch([]byte(tc.patch)); err != nil {
			t.Fatalf("ApplyPatch(%s): %v", tc.patch, err)
		}
		if !tc.check(c) {
			t.Errorf("ApplyPatch(%s) did not take effect: %+v", tc.patch, c)
		}
	}
}
