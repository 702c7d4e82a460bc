// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aggregate

import (
	"testing"
	"time"

	"github.com/vatsimnet/fsdtap/fsd"
)

func TestControllerAggregatorUpsertPreservesOtherSlots(t *testing.T) {
	a := NewControllerAggregator(time.Minute)

	a.ProcessClient(fsd.NetworkClient{Callsign: "BOS_APP", RealName: "Boston App"})
	a.ProcessPosition(fsd.ATCPosition{Callsign: "BOS_APP", Facility: fsd.FacilityAPP})

	client, ok := a.GetClient("BOS_APP")
	if !ok || client.RealName != "Boston App" {
		t.Fatalf("GetClient = %+v, %v", client, ok)
	}
	pos, ok := a.GetPosition("BOS_APP")
	if !ok || pos.Facility != fsd.FacilityAPP {
		t.Fatalf("GetPosition = %+v, %v", pos, ok)
	}
	if n := a.NumberTracked(); n != 1 {
		t.Fatalf("NumberTracked = %d, want 1", n)
	}
}

func TestControllerAggregatorDelete(t *testing.T) {
	a := NewControllerAggregator(time.Minute)
	a.ProcessClient(fsd.NetworkClient{Callsign: "BOS_APP"})
	a.Delete("BOS_APP")

	if _, ok := a.GetClient("BOS_APP"); ok {
		t.Fatalf("expected deleted aggregate to be gone")
	}
	if n := a.NumberTracked(); n != 0 {
		t.Fatalf("NumberTracked = %d, want 0", n)
	}
}

func TestControllerAggregatorCallsignsSorted(t *testing.T) {
	a := NewControllerAggregator(time.Minute)
	a.ProcessClient(fsd.NetworkClient{Callsign: "BOS_APP"})
	a.ProcessClient(fsd.NetworkClient{Callsign: "ABE_DEP"})

	got := a.Callsigns()
	want := []string{"ABE_DEP", "BOS_APP"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Callsigns() = %v, want %v", got, want)
	}
}
