// clientquery.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fsd

import (
	"encoding/json"
	"strings"
)

// ClientQueryType is the closed set of $CQ/$CR sub-commands, keyed by
// the token in fields[2].
type ClientQueryType int

const (
	QueryUnknown ClientQueryType = iota
	QueryIsValidATC
	QueryCapabilities
	QueryCOM1Freq
	QueryRealName
	QueryServer
	QueryATIS
	QueryPublicIP
	QueryINF
	QueryFlightPlan
	QueryIPC
	QueryRequestRelief
	QueryCancelRequestRelief
	QueryRequestHelp
	QueryCancelRequestHelp
	QueryWhoHas
	QueryInitiateTrack
	QueryAcceptHandoff
	QueryDropTrack
	QuerySetFinalAltitude
	QuerySetTempAltitude
	QuerySetBeaconCode
	QuerySetScratchpad
	QuerySetVoiceType
	QueryAircraftConfiguration
	QueryNewInfo
	QueryNewATIS
)

var clientQueryTokens = map[string]ClientQueryType{
	"ATC":     QueryIsValidATC,
	"CAPS":    QueryCapabilities,
	"C?":      QueryCOM1Freq,
	"RN":      QueryRealName,
	"SV":      QueryServer,
	"ATIS":    QueryATIS,
	"IP":      QueryPublicIP,
	"INF":     QueryINF,
	"FP":      QueryFlightPlan,
	"IPC":     QueryIPC,
	"BY":      QueryRequestRelief,
	"HI":      QueryCancelRequestRelief,
	"HLP":     QueryRequestHelp,
	"NOHLP":   QueryCancelRequestHelp,
	"WH":      QueryWhoHas,
	"IT":      QueryInitiateTrack,
	"HT":      QueryAcceptHandoff,
	"DR":      QueryDropTrack,
	"FA":      QuerySetFinalAltitude,
	"TA":      QuerySetTempAltitude,
	"BC":      QuerySetBeaconCode,
	"SC":      QuerySetScratchpad,
	"VT":      QuerySetVoiceType,
	"ACC":     QueryAircraftConfiguration,
	"NEWINFO": QueryNewInfo,
	"NEWATIS": QueryNewATIS,
}

// ParseClientQueryType maps the token at fields[2] to a ClientQueryType;
// anything not in the table is QueryUnknown.
func ParseClientQueryType(token string) ClientQueryType {
	if t, ok := clientQueryTokens[token]; ok {
		return t
	}
	return QueryUnknown
}

// twoTokenPayload query types bind two bare strings when the payload
// carries two or more tokens.
var twoTokenPayload = map[ClientQueryType]bool{
	QuerySetBeaconCode:    true,
	QuerySetFinalAltitude: true,
	QuerySetScratchpad:    true,
	QuerySetTempAltitude:  true,
	QuerySetVoiceType:     true,
	QueryAcceptHandoff:    true,
}

// oneTokenPayload query types bind a single bare string when the
// payload carries exactly one token.
var oneTokenPayload = map[ClientQueryType]bool{
	QueryDropTrack:     true,
	QueryFlightPlan:    true,
	QueryInitiateTrack: true,
	QueryNewATIS:       true,
	QueryNewInfo:       true,
	QueryWhoHas:        true,
}

// ClientQueryPayloadKind discriminates the ClientQueryPayload tagged
// variant.
type ClientQueryPayloadKind int

const (
	PayloadTwoString ClientQueryPayloadKind = iota
	PayloadAircraftConfiguration
	PayloadUnknown
	PayloadOneString
	PayloadRealName
	PayloadIsValidATCQuery
	PayloadIsValidATCResponse
)

// ClientQueryPayload is the polymorphic ClientQuery payload. Only the
// fields relevant to Kind are populated.
type ClientQueryPayload struct {
	Kind ClientQueryPayloadKind

	// PayloadTwoString
	First  string
	Second string

	// PayloadAircraftConfiguration
	Configuration json.RawMessage

	// PayloadUnknown
	Tokens []string

	// PayloadOneString
	Value string

	// PayloadRealName
	RealName     string
	FacilityName string
	Rating       string

	// PayloadIsValidATCQuery
	Target string

	// PayloadIsValidATCResponse
	IsValidATC bool
}

// ParseClientQueryPayload builds the payload variant for queryType from
// the tokens following fields[2] (i.e. fields[3:]), per the three-way
// split on payload token count in §4.3. isResponse distinguishes the
// IsValidATC request and response shapes, which share a query type but
// not a payload grammar.
func ParseClientQueryPayload(queryType ClientQueryType, isResponse bool, tokens []string) ClientQueryPayload {
	switch len(tokens) {
	case 0:
		if queryType == QueryIsValidATC && !isResponse {
			return ClientQueryPayload{Kind: PayloadIsValidATCQuery}
		}
		return ClientQueryPayload{Kind: PayloadUnknown, Tokens: tokens}

	case 1:
		switch queryType {
		case QueryDropTrack, QueryFlightPlan, QueryInitiateTrack, QueryNewATIS, QueryNewInfo, QueryWhoHas:
			return ClientQueryPayload{Kind: PayloadOneString, Value: tokens[0]}
		case QueryRealName:
			if isResponse {
				return ClientQueryPayload{Kind: PayloadRealName, RealName: tokens[0]}
			}
			return ClientQueryPayload{Kind: PayloadUnknown, Tokens: tokens}
		case QueryIsValidATC:
			if !isResponse {
				return ClientQueryPayload{Kind: PayloadIsValidATCQuery, Target: tokens[0]}
			}
			return ClientQueryPayload{Kind: PayloadIsValidATCResponse, IsValidATC: tokens[0] == "Y"}
		default:
			return ClientQueryPayload{Kind: PayloadUnknown, Tokens: tokens}
		}

	default:
		if twoTokenPayload[queryType] {
			return ClientQueryPayload{Kind: PayloadTwoString, First: tokens[0], Second: tokens[1]}
		}
		if queryType == QueryAircraftConfiguration {
			return ClientQueryPayload{
				Kind:          PayloadAircraftConfiguration,
				Configuration: json.RawMessage(strings.Join(tokens, ":")),
			}
		}
		return ClientQueryPayload{Kind: PayloadUnknown, Tokens: tokens}
	}
}
