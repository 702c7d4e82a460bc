// parser.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fsd

import (
	"strconv"
	"strings"
)

// Parse decodes a single logical FSD line into its typed Record. It
// returns ErrNotAPacket for anything that isn't a recognized command,
// and a MalformedLineError if the command tag matched but a field
// didn't decode the way the grammar requires.
//
// Parse does no I/O; splitting a captured frame's payload into lines is
// the caller's job (see package capture).
func Parse(line string) (Record, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, "\x00")

	if len(line) == 0 || !strings.Contains(line, ":") {
		return nil, ErrNotAPacket
	}
	if len(line) < 3 || !isASCII(line[0]) || !isASCII(line[1]) || !isASCII(line[2]) {
		return nil, ErrNotAPacket
	}

	switch line[0] {
	case '%':
		return parseATCPosition(line)
	case '@':
		return parsePilotPosition(line)
	case '#', '$':
		return parseCommand(line)
	default:
		return nil, ErrNotAPacket
	}
}

func isASCII(b byte) bool {
	return b < 0x80
}

func parseATCPosition(line string) (Record, error) {
	fields := strings.Split(line, ":")
	if len(fields) < 7 {
		return nil, MalformedLineError{"%", "too few fields"}
	}

	visRange, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		return nil, MalformedLineError{"%", "non-numeric vis_range: " + fields[3]}
	}
	lat, err := strconv.ParseFloat(fields[5], 32)
	if err != nil {
		return nil, MalformedLineError{"%", "non-numeric lat: " + fields[5]}
	}
	lon, err := strconv.ParseFloat(fields[6], 32)
	if err != nil {
		return nil, MalformedLineError{"%", "non-numeric lon: " + fields[6]}
	}
	if len(fields[1]) < 5 {
		return nil, MalformedLineError{"%", "short frequency token: " + fields[1]}
	}

	return ATCPosition{
		Callsign: fields[0][1:],
		Freq:     ParseFrequency(fields[1]),
		Facility: ParseFacility(fields[2]),
		VisRange: uint32(visRange),
		Rating:   ParseRating(fields[4]),
		Lat:      float32(lat),
		Lon:      float32(lon),
	}, nil
}

func parsePilotPosition(line string) (Record, error) {
	fields := strings.Split(line, ":")
	if len(fields) < 10 {
		return nil, MalformedLineError{"@", "too few fields"}
	}

	squawking := ParseSquawkType(fields[0][1:])

	squawkCode, err := strconv.ParseUint(fields[2], 10, 16)
	if err != nil {
		return nil, MalformedLineError{"@", "non-numeric squawk code: " + fields[2]}
	}
	lat, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return nil, MalformedLineError{"@", "non-numeric lat: " + fields[4]}
	}
	lon, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return nil, MalformedLineError{"@", "non-numeric lon: " + fields[5]}
	}
	trueAlt, err := strconv.ParseInt(fields[6], 10, 32)
	if err != nil {
		return nil, MalformedLineError{"@", "non-numeric true_alt: " + fields[6]}
	}
	groundSpeed, err := strconv.ParseInt(fields[7], 10, 32)
	if err != nil {
		return nil, MalformedLineError{"@", "non-numeric ground_speed: " + fields[7]}
	}
	surfaces, err := strconv.ParseUint(fields[8], 10, 64)
	if err != nil {
		return nil, MalformedLineError{"@", "non-numeric packed attitude: " + fields[8]}
	}
	pressureDelta, err := strconv.ParseInt(fields[9], 10, 32)
	if err != nil {
		return nil, MalformedLineError{"@", "non-numeric pressure delta: " + fields[9]}
	}

	return PilotPosition{
		Callsign:    fields[1],
		SquawkCode:  uint16(squawkCode),
		Squawking:   squawking,
		Rating:      ParseRating(fields[3]),
		Lat:         lat,
		Lon:         lon,
		TrueAlt:     int32(trueAlt),
		PressureAlt: int32(trueAlt + pressureDelta),
		GroundSpeed: int32(groundSpeed),
		PBH:         DecodeFlightSurfaces(int64(surfaces)),
	}, nil
}

// parseCommand handles every "#" or "$" prefixed line: it reads the
// 2-character command from the front of fields[0] and dispatches into
// the per-command handler. fields[0] still carries prefix+command+
// callsign glued together, matching the positional bindings in §3.
func parseCommand(line string) (Record, error) {
	fields := strings.Split(line, ":")
	if len(fields[0]) < 3 {
		return nil, ErrNotAPacket
	}
	cmd := fields[0][1:3]
	sender := fields[0][3:]

	switch cmd {
	case "AA":
		return parseNetworkClient(fields, sender, ClientTypeATC)
	case "AP":
		return parseNetworkClient(fields, sender, ClientTypePilot)
	case "DA":
		return parseDeleteClient(fields, sender, ClientTypeATC)
	case "DP":
		return parseDeleteClient(fields, sender, ClientTypePilot)
	case "TM":
		return parseTextMessage(fields, sender)
	case "FP":
		return parseFlightPlan(fields, sender, false)
	case "AM":
		return parseFlightPlan(fields, sender, true)
	case "HO":
		return parseTransferControl(fields, sender, TransferReceived, 2)
	case "HA":
		return parseTransferControl(fields, sender, TransferAccepted, 2)
	case "AR":
		return parseMetar(fields, sender, true)
	case "AX":
		return parseMetar(fields, sender, false)
	case "PC":
		return parsePC(fields, sender)
	case "CQ":
		return parseClientQuery(fields, sender, false)
	case "CR":
		return parseClientQuery(fields, sender, true)
	default:
		return nil, ErrNotAPacket
	}
}

func parseNetworkClient(fields []string, callsign string, clientType NetworkClientType) (Record, error) {
	if clientType == ClientTypeATC {
		if len(fields) < 6 {
			return nil, MalformedLineError{"#AA", "too few fields"}
		}
		return NetworkClient{
			Callsign:    callsign,
			RealName:    fields[2],
			CID:         fields[3],
			Password:    fields[4],
			Rating:      ParseRating(fields[5]),
			ProtocolVer: ProtocolUnknown,
			ClientType:  ClientTypeATC,
		}, nil
	}

	if len(fields) < 8 {
		return nil, MalformedLineError{"#AP", "too few fields"}
	}
	return NetworkClient{
		Callsign:     callsign,
		CID:          fields[2],
		Password:     fields[3],
		Rating:       ParseRating(fields[4]),
		ProtocolVer:  ParseProtocolRevision(fields[5]),
		SimulatorTyp: ParseSimulatorType(fields[6]),
		RealName:     fields[7],
		ClientType:   ClientTypePilot,
	}, nil
}

func parseDeleteClient(fields []string, callsign string, clientType NetworkClientType) (Record, error) {
	if len(fields) < 2 {
		return nil, MalformedLineError{"#D", "missing cid field"}
	}
	return DeleteClient{Callsign: callsign, CID: fields[1], ClientType: clientType}, nil
}

func parseTextMessage(fields []string, sender string) (Record, error) {
	if len(fields) < 3 {
		return nil, MalformedLineError{"#TM", "too few fields"}
	}
	return TextMessage{
		Sender:   sender,
		Receiver: ParseTextMessageReceiver(fields[1]),
		Text:     strings.Join(fields[2:], ":"),
	}, nil
}

func parseFlightPlan(fields []string, callsign string, amend bool) (Record, error) {
	if len(fields) < 16 {
		return nil, MalformedLineError{"$FP", "too few fields"}
	}

	fp := FlightPlan{
		Callsign:        callsign,
		Rule:            ParseFlightRules(fields[2]),
		Equipment:       fields[3],
		TAS:             fields[4],
		Origin:          fields[5],
		DepTime:         fields[6],
		ActualDepTime:   fields[7],
		CruiseAlt:       fields[8],
		Dest:            fields[9],
		HoursEnroute:    fields[10],
		MinutesEnroute:  fields[11],
		FuelAvailHours:  fields[12],
		FuelAvailMinute: fields[13],
		Alternate:       fields[14],
		Remarks:         fields[15],
	}
	if len(fields) > 16 {
		fp.Route = fields[16]
	}
	if amend {
		fp.IsAmended = true
		if len(fields) > 17 {
			fp.AmendedBy = fields[17]
		}
	}
	return fp, nil
}

func parseTransferControl(fields []string, sender string, action TransferControlAction, targetIndex int) (Record, error) {
	if len(fields) <= targetIndex {
		return nil, MalformedLineError{"transfer-control", "too few fields"}
	}
	return TransferControl{
		From:   sender,
		To:     fields[1],
		Target: fields[targetIndex],
		Action: action,
	}, nil
}

func parseMetar(fields []string, sender string, isResponse bool) (Record, error) {
	if len(fields) < 4 {
		return nil, MalformedLineError{"metar", "too few fields"}
	}
	return Metar{
		IsResponse: isResponse,
		From:       sender,
		To:         fields[1],
		Payload:    strings.Join(fields[3:], ":"),
	}, nil
}

// parsePC dispatches the #PC/CCP sub-protocol on fields[3]: four
// sub-commands produce TransferControl, one produces FlightStrip, and
// four produce SharedState. Anything else is not a packet.
func parsePC(fields []string, sender string) (Record, error) {
	if len(fields) < 4 {
		return nil, ErrNotAPacket
	}
	to := fields[1]

	switch fields[3] {
	case "HC":
		return pcTransferControl(fields, sender, to, TransferCancelled)
	case "DP":
		return pcTransferControl(fields, sender, to, TransferPushToDepartures)
	case "PT":
		return pcTransferControl(fields, sender, to, TransferPointout)
	case "IH":
		return pcTransferControl(fields, sender, to, TransferIHaveControl)
	case "ST":
		return parseFlightStrip(fields, sender, to)
	case "SC":
		return pcSharedState(fields, sender, to, SharedStateScratchpad)
	case "BC":
		return pcSharedState(fields, sender, to, SharedStateBeaconCode)
	case "VT":
		return pcSharedState(fields, sender, to, SharedStateVoiceType)
	case "TA":
		return pcSharedState(fields, sender, to, SharedStateTempAlt)
	default:
		return nil, ErrNotAPacket
	}
}

func pcTransferControl(fields []string, sender, to string, action TransferControlAction) (Record, error) {
	if len(fields) < 5 {
		return nil, MalformedLineError{"#PC", "too few fields"}
	}
	return TransferControl{From: sender, To: to, Target: fields[4], Action: action}, nil
}

func pcSharedState(fields []string, sender, to string, kind SharedStateKind) (Record, error) {
	if len(fields) < 5 {
		return nil, MalformedLineError{"#PC", "too few fields"}
	}
	value := ""
	if len(fields) > 5 {
		value = fields[5]
	}
	return SharedState{From: sender, To: to, Target: fields[4], Value: value, Kind: kind}, nil
}

func parseFlightStrip(fields []string, sender, to string) (Record, error) {
	if len(fields) < 5 {
		return nil, MalformedLineError{"#PC", "too few fields"}
	}
	formatID := ""
	var annotations []string
	if len(fields) > 5 {
		formatID = fields[5]
	}
	if len(fields) > 6 {
		annotations = fields[6:]
	}
	return FlightStrip{From: sender, To: to, Target: fields[4], FormatID: formatID, Annotations: annotations}, nil
}

// parseClientQuery handles $CQ and $CR lines: the query kind is at
// fields[2], and the payload is built from fields[3:] per the
// three-way split on token count documented in clientquery.go.
// QueryIPC is further split into its own PlaneInfoRequest/
// PlaneInfoResponse records rather than a generic ClientQuery, since
// its payload grammar (a legacy X-flagged triple or a set of key=value
// tokens) doesn't fit the bare-string/JSON shapes the other query
// types use.
func parseClientQuery(fields []string, sender string, isResponse bool) (Record, error) {
	if len(fields) < 3 {
		return nil, ErrNotAPacket
	}
	queryType := ParseClientQueryType(fields[2])
	to := fields[1]

	var payloadTokens []string
	if len(fields) > 3 {
		payloadTokens = fields[3:]
	}

	if queryType == QueryIPC {
		if !isResponse {
			return PlaneInfoRequest{From: sender, To: to}, nil
		}
		return parsePlaneInfoResponse(sender, to, payloadTokens)
	}

	return ClientQuery{
		IsResponse: isResponse,
		From:       sender,
		To:         to,
		QueryType:  queryType,
		Payload:    ParseClientQueryPayload(queryType, isResponse, payloadTokens),
	}, nil
}

// parsePlaneInfoResponse decodes a $CR::IPC response. A leading "X"
// payload token marks the legacy two-field form (engine type at
// payload[2], CSL at payload[3], payload[1] being an unused protocol
// version slot); anything else is the modern key=value form, scanned
// case-insensitively for EQUIPMENT=/AIRLINE=/LIVERY=/CSL= tokens.
func parsePlaneInfoResponse(sender, to string, payload []string) (Record, error) {
	if len(payload) > 0 && payload[0] == "X" {
		if len(payload) < 4 {
			return nil, MalformedLineError{"$CR:IPC", "too few fields for legacy plane info"}
		}
		return PlaneInfoResponse{
			From:     sender,
			To:       to,
			IsLegacy: true,
			Legacy: PlaneInfoLegacy{
				EngineType: ParseEngineType(payload[2]),
				CSL:        payload[3],
			},
		}, nil
	}

	return PlaneInfoResponse{
		From:     sender,
		To:       to,
		IsLegacy: false,
		Regular: PlaneInfoRegular{
			Equipment: findPlaneInfoValue(payload, "EQUIPMENT"),
			Airline:   findPlaneInfoValue(payload, "AIRLINE"),
			Livery:    findPlaneInfoValue(payload, "LIVERY"),
			CSL:       findPlaneInfoValue(payload, "CSL"),
		},
	}, nil
}

// findPlaneInfoValue returns the remainder of the first token in
// fields that starts with "KEY=", matched case-insensitively, or ""
// if no such token is present.
func findPlaneInfoValue(fields []string, key string) string {
	prefix := key + "="
	for _, f := range fields {
		if len(f) >= len(prefix) && strings.EqualFold(f[:len(prefix)], prefix) {
			return f[len(prefix):]
		}
	}
	return ""
}
