// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fsd

import "testing"

func TestParseClientQueryTwoTokenPayload(t *testing.T) {
	rec, err := Parse("$CQEWR_1_DEL:@94835:BC:UAL1549:2334")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cq := rec.(ClientQuery)
	if cq.From != "EWR_1_DEL" || cq.To != "@94835" || cq.QueryType != QuerySetBeaconCode {
		t.Errorf("cq = %+v", cq)
	}
	if cq.Payload.Kind != PayloadTwoString || cq.Payload.First != "UAL1549" || cq.Payload.Second != "2334" {
		t.Errorf("payload = %+v", cq.Payload)
	}
}

func TestParseClientQueryOneTokenPayload(t *testing.T) {
	rec, err := Parse("$CQEWR_1_DEL:@94835:WH:UAL1549")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cq := rec.(ClientQuery)
	if cq.QueryType != QueryWhoHas || cq.Payload.Kind != PayloadOneString || cq.Payload.Value != "UAL1549" {
		t.Errorf("cq = %+v", cq)
	}
}

func TestParseClientQueryIsValidATC(t *testing.T) {
	rec, err := Parse("$CQEWR_1_DEL:SERVER:ATC:BOS_APP")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cq := rec.(ClientQuery)
	if cq.IsResponse || cq.QueryType != QueryIsValidATC || cq.Payload.Kind != PayloadIsValidATCQuery ||
		cq.Payload.Target != "BOS_APP" {
		t.Errorf("cq = %+v", cq)
	}

	rec, err = Parse("$CRSERVER:EWR_1_DEL:ATC:Y")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cq = rec.(ClientQuery)
	if !cq.IsResponse || cq.Payload.Kind != PayloadIsValidATCResponse || !cq.Payload.IsValidATC {
		t.Errorf("cq = %+v", cq)
	}
}

func TestParseClientQueryIsValidATCNoToken(t *testing.T) {
	rec, err := Parse("$CQEWR_1_DEL:SERVER:ATC")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cq := rec.(ClientQuery)
	if cq.Payload.Kind != PayloadIsValidATCQuery || cq.Payload.Target != "" {
		t.Errorf("payload = %+v", cq.Payload)
	}
}

func TestParseClientQueryAircraftConfiguration(t *testing.T) {
	rec, err := Parse(`$CQSWA1895:@94835:ACC:{"config":{"is_full":true,"gear_down":true}}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cq := rec.(ClientQuery)
	if cq.QueryType != QueryAircraftConfiguration || cq.Payload.Kind != PayloadAircraftConfiguration {
		t.Errorf("cq = %+v", cq)
	}
	want := `{"config":{"is_full":true,"gear_down":true}}`
	if string(cq.Payload.Configuration) != want {
		t.Errorf("Configuration = %q, want %q", cq.Payload.Configuration, want)
	}
}

func TestParseClientQueryUnknownQueryType(t *testing.T) {
	rec, err := Parse("$CQSWA1895:@94835:ZZZ:a:b")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cq := rec.(ClientQuery)
	if cq.QueryType != QueryUnknown || cq.Payload.Kind != PayloadUnknown {
		t.Errorf("cq = %+v", cq)
	}
	if len(cq.Payload.Tokens) != 2 || cq.Payload.Tokens[0] != "a" || cq.Payload.Tokens[1] != "b" {
		t.Errorf("tokens = %+v", cq.Payload.Tokens)
	}
}
