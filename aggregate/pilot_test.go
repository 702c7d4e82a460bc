// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aggregate

import (
	"testing"
	"time"

	"github.com/vatsimnet/fsdtap/fsd"
)

func TestPilotAggregatorUpsertPreservesOtherSlots(t *testing.T) {
	a := NewPilotAggregator(time.Minute)

	a.ProcessClient(fsd.NetworkClient{Callsign: "N513PW", CID: "100"})
	a.ProcessPosition(fsd.PilotPosition{Callsign: "N513PW", TrueAlt: 174})

	client, ok := a.GetClient("N513PW")
	if !ok || client.CID != "100" {
		t.Fatalf("GetClient = %+v, %v", client, ok)
	}
	pos, ok := a.GetPosition("N513PW")
	if !ok || pos.TrueAlt != 174 {
		t.Fatalf("GetPosition = %+v, %v", pos, ok)
	}

	// A second position update must not disturb the client slot.
	a.ProcessPosition(fsd.PilotPosition{Callsign: "N513PW", TrueAlt: 200})
	client, ok = a.GetClient("N513PW")
	if !ok || client.CID != "100" {
		t.Fatalf("client slot disturbed: %+v, %v", client, ok)
	}
	pos, _ = a.GetPosition("N513PW")
	if pos.TrueAlt != 200 {
		t.Fatalf("position not updated: %+v", pos)
	}

	if n := a.NumberTracked(); n != 1 {
		t.Fatalf("NumberTracked = %d, want 1", n)
	}
}

func TestPilotAggregatorPositionBeforeClient(t *testing.T) {
	a := NewPilotAggregator(time.Minute)
	a.ProcessPosition(fsd.PilotPosition{Callsign: "N513PW"})

	if _, ok := a.GetClient("N513PW"); ok {
		t.Fatalf("expected no client slot")
	}
	if _, ok := a.GetPosition("N513PW"); !ok {
		t.Fatalf("expected a position slot")
	}
	if n := a.NumberTracked(); n != 1 {
		t.Fatalf("NumberTracked = %d, want 1", n)
	}
}

func TestPilotAggregatorDeleteIsUnconditional(t *testing.T) {
	a := NewPilotAggregator(time.Minute)
	a.Delete("NEVERSEEN")

	a.ProcessClient(fsd.NetworkClient{Callsign: "N513PW"})
	a.Delete("N513PW")

	if _, ok := a.GetClient("N513PW"); ok {
		t.Fatalf("expected deleted client slot to be gone")
	}
	if _, ok := a.GetPosition("N513PW"); ok {
		t.Fatalf("expected deleted position slot to be gone")
	}
	if _, ok := a.GetConfig("N513PW"); ok {
		t.Fatalf("expected deleted config slot to be gone")
	}
	if n := a.NumberTracked(); n != 0 {
		t.Fatalf("NumberTracked = %d, want 0", n)
	}
}

func TestPilotAggregatorCallsignsSorted(t *testing.T) {
	a := NewPilotAggregator(time.Minute)
	a.ProcessClient(fsd.NetworkClient{Callsign: "SWA1895"})
	a.ProcessClient(fsd.NetworkClient{Callsign: "N513PW"})
	a.ProcessClient(fsd.NetworkClient{Callsign: "DAL202"})

	got := a.Callsigns()
	want := []string{"DAL202", "N513PW", "SWA1895"}
	if len(got) != len(want) {
		t.Fatalf("Callsigns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Callsigns() = %v, want %v", got, want)
		}
	}
}

func TestPilotAggregatorProcessConfig(t *testing.T) {
	a := NewPilotAggregator(time.Minute)

	if err := a.ProcessConfig("N513PW", []byte(`{"gear_down": true}`)); err != nil {
		t.Fatalf("ProcessConfig: %v", err)
	}
	cfg, ok := a.GetConfig("N513PW")
	if !ok || !cfg.GearDown {
		t.Fatalf("GetConfig = %+v, %v", cfg, ok)
	}

	if err := a.ProcessConfig("N513PW", []byte(`{"flaps_pct": 50}`)); err != nil {
		t.Fatalf("ProcessConfig: %v", err)
	}
	cfg, _ = a.GetConfig("N513PW")
	if !cfg.GearDown || cfg.FlapsPct != 50 {
		t.Fatalf("second patch lost prior state: %+v", cfg)
	}
}
