package mqttv5

// ReasonCode represents an MQTT v5.0 reason code.
// MQTT v5.0 spec: Section 2.4
type ReasonCode byte

// Reason codes as defined in MQTT v5.0 specification.
// MQTT v5.0 spec: Section 2.4
const (
	// Success / Normal disconnection / Granted QoS 0
	ReasonSuccess ReasonCode = 0x00
	// Granted QoS 1
	ReasonGrantedQoS1 ReasonCode = 0x01
	// Granted QoS 2
	ReasonGrantedQoS2 ReasonCode = 0x02
	// Disconnect with Will Message
	ReasonDisconnectWithWill ReasonCode = 0x04
	// No matching subscribers
	ReasonNoMatchingSubscribers ReasonCode = 0x10
	// No subscription existed
	ReasonNoSubscriptionExisted ReasonCode = 0x11
	// Continue authentication
	ReasonContinueAuth ReasonCode = 0x18
	// Re-authenticate
	ReasonReAuth ReasonCode = 0x19
	// Unspecified error
	ReasonUnspecifiedError ReasonCode = 0x80
	// Malformed Packet
	ReasonMalformedPacket ReasonCode = 0x81
	// Protocol Error
	ReasonProtocolError ReasonCode = 0x82
	// Implementation specific error
	ReasonImplSpecificError ReasonCode = 0x83
	// Unsupported Protocol Version
	ReasonUnsupportedProtocolVersion ReasonCode = 0x84
	// Client Identifier not valid
	ReasonClientIDNotValid ReasonCode = 0x85
	// Bad User Name or Password
	ReasonBadUserNameOrPassword ReasonCode = 0x86
	// Not authorized
	ReasonNotAuthorized ReasonCode = 0x87
	// Server unavailable
	ReasonServerUnavailable ReasonCode = 0x88
	// Server busy
	ReasonServerBusy ReasonCode = 0x89
	// Banned
	ReasonBanned ReasonCode = 0x8A
	// Server shutting down
	ReasonServerShuttingDown ReasonCode = 0x8B
	// Bad authentication method
	ReasonBadAuthMethod ReasonCode = 0x8C
	// Keep Alive timeout
	ReasonKeepAliveTimeout ReasonCode = 0x8D
	// Session taken over
	ReasonSessionTakenOver ReasonCode = 0x8E
	// Topic Filter invalid
	ReasonTopicFilterInvalid ReasonCode = 0x8F
	// Topic Name invalid
	ReasonTopicNameInvalid ReasonCode = 0x90
	// Packet Identifier in use
	ReasonPacketIDInUse ReasonCode = 0x91
	// Packet Identifier not found
	ReasonPacketIDNotFound ReasonCode = 0x92
	// Receive Maximum exceeded
	ReasonReceiveMaxExceeded ReasonCode = 0x93
	// Topic Alias invalid
	ReasonTopicAliasInvalid ReasonCode = 0x94
	// Packet too large
	ReasonPacketTooLarge ReasonCode = 0x95
	// Message rate too high
	ReasonMessageRateTooHigh ReasonCode = 0x96
	// Quota exceeded
	ReasonQuotaExceeded ReasonCode = 0x97
	// Administrative action
	ReasonAdminAction ReasonCode = 0x98
	// Payload format invalid
	ReasonPayloadFormatInvalid ReasonCode = 0x99
	// Retain not supported
	ReasonRetainNotSupported ReasonCode = 0x9A
	// QoS not supported
	ReasonQoSNotSupported ReasonCode = 0x9B
	// Use another server
	ReasonUseAnotherServer ReasonCode = 0x9C
	// Server moved
	ReasonServerMoved ReasonCode = 0x9D
	// Shared Subscriptions not supported
	ReasonSharedSubsNotSupported ReasonCode = 0x9E
	// Connection rate exceeded
	ReasonConnectionRateExceeded ReasonCode = 0x9F
	// Maximum connect time
	ReasonMaxConnectTime ReasonCode = 0xA0
	// Subscription Identifiers not supported
	ReasonSubIDsNotSupported ReasonCode = 0xA1
	// Wildcard Subscriptions not supported
	ReasonWildcardSubsNotSupported ReasonCode = 0xA2
)

// ReasonGrantedQoS0 is Success reused in the SUBACK granted-QoS sense.
const ReasonGrantedQoS0 = ReasonSuccess

var reasonCodeStrings = [...]struct {
	code ReasonCode
	text string
}{
	{ReasonSuccess, "Success"},
	{ReasonGrantedQoS1, "Granted QoS 1"},
	{ReasonGrantedQoS2, "Granted QoS 2"},
	{ReasonDisconnectWithWill, "Disconnect with Will Message"},
	{ReasonNoMatchingSubscribers, "No matching subscribers"},
	{ReasonNoSubscriptionExisted, "No subscription existed"},
	{ReasonContinueAuth, "Continue authentication"},
	{ReasonReAuth, "Re-authenticate"},
	{ReasonUnspecifiedError, "Unspecified error"},
	{ReasonMalformedPacket, "Malformed Packet"},
	{ReasonProtocolError, "Protocol Error"},
	{ReasonImplSpecificError, "Implementation specific error"},
	{ReasonUnsupportedProtocolVersion, "Unsupported Protocol Version"},
	{ReasonClientIDNotValid, "Client Identifier not valid"},
	{ReasonBadUserNameOrPassword, "Bad User Name or Password"},
	{ReasonNotAuthorized, "Not authorized"},
	{ReasonServerUnavailable, "Server unavailable"},
	{ReasonServerBusy, "Server busy"},
	{ReasonBanned, "Banned"},
	{ReasonServerShuttingDown, "Server shutting down"},
	{ReasonBadAuthMethod, "Bad authentication method"},
	{ReasonKeepAliveTimeout, "Keep Alive timeout"},
	{ReasonSessionTakenOver, "Session taken over"},
	{ReasonTopicFilterInvalid, "Topic Filter invalid"},
	{ReasonTopicNameInvalid, "Topic Name invalid"},
	{ReasonPacketIDInUse, "Packet Identifier in use"},
	{ReasonPacketIDNotFound, "Packet Identifier not found"},
	{ReasonReceiveMaxExceeded, "Receive Maximum exceeded"},
	{ReasonTopicAliasInvalid, "Topic Alias invalid"},
	{ReasonPacketTooLarge, "Packet too large"},
	{ReasonMessageRateTooHigh, "Message rate too high"},
	{ReasonQuotaExceeded, "Quota exceeded"},
	{ReasonAdminAction, "Administrative action"},
	{ReasonPayloadFormatInvalid, "Payload format invalid"},
	{ReasonRetainNotSupported, "Retain not supported"},
	{ReasonQoSNotSupported, "QoS not supported"},
	{ReasonUseAnotherServer, "Use another server"},
	{ReasonServerMoved, "Server moved"},
	{ReasonSharedSubsNotSupported, "Shared Subscriptions not supported"},
	{ReasonConnectionRateExceeded, "Connection rate exceeded"},
	{ReasonMaxConnectTime, "Maximum connect time"},
	{ReasonSubIDsNotSupported, "Subscription Identifiers not supported"},
	{ReasonWildcardSubsNotSupported, "Wildcard Subscriptions not supported"},
}

// String returns the human-readable description of the reason code.
func (r ReasonCode) String() string {
	for _, e := range reasonCodeStrings {
		if e.code == r {
			return e.text
		}
	}
	return "Unknown reason code"
}

// IsError reports whether the reason code indicates an error (>= 0x80).
func (r ReasonCode) IsError() bool {
	return r >= 0x80
}

// IsSuccess reports whether the reason code indicates success (< 0x80).
func (r ReasonCode) IsSuccess() bool {
	return r < 0x80
}

// reasonScope is a bitmask of the packet types a reason code is legal on,
// one bit per PacketType value, mirroring the allowed-property bitmask in
// properties_context.go. A single table replaces a map-per-packet-type.
type reasonScope uint16

const (
	scopeCONNACK    reasonScope = 1 << PacketCONNACK
	scopePUBACK     reasonScope = 1 << PacketPUBACK
	scopePUBREC     reasonScope = 1 << PacketPUBREC
	scopePUBREL     reasonScope = 1 << PacketPUBREL
	scopePUBCOMP    reasonScope = 1 << PacketPUBCOMP
	scopeSUBACK     reasonScope = 1 << PacketSUBACK
	scopeUNSUBACK   reasonScope = 1 << PacketUNSUBACK
	scopeDISCONNECT reasonScope = 1 << PacketDISCONNECT
	scopeAUTH       reasonScope = 1 << PacketAUTH
)

// reasonScopes maps every reason code to the set of packet types it is
// legal on. A code absent from the table is legal on none.
var reasonScopes = map[ReasonCode]reasonScope{
	ReasonSuccess:                    scopeCONNACK | scopePUBACK | scopePUBREC | scopePUBREL | scopePUBCOMP | scopeSUBACK | scopeUNSUBACK | scopeDISCONNECT | scopeAUTH,
	ReasonGrantedQoS1:                scopeSUBACK,
	ReasonGrantedQoS2:                scopeSUBACK,
	ReasonDisconnectWithWill:         scopeDISCONNECT,
	ReasonNoMatchingSubscribers:      scopePUBACK | scopePUBREC,
	ReasonNoSubscriptionExisted:      scopeUNSUBACK,
	ReasonContinueAuth:               scopeAUTH,
	ReasonReAuth:                     scopeAUTH,
	ReasonUnspecifiedError:           scopeCONNACK | scopePUBACK | scopePUBREC | scopeSUBACK | scopeUNSUBACK | scopeDISCONNECT,
	ReasonMalformedPacket:            scopeCONNACK | scopeDISCONNECT,
	ReasonProtocolError:              scopeCONNACK | scopeDISCONNECT,
	ReasonImplSpecificError:          scopeCONNACK | scopePUBACK | scopePUBREC | scopeSUBACK | scopeUNSUBACK | scopeDISCONNECT,
	ReasonUnsupportedProtocolVersion: scopeCONNACK,
	ReasonClientIDNotValid:           scopeCONNACK,
	ReasonBadUserNameOrPassword:      scopeCONNACK,
	ReasonNotAuthorized:              scopeCONNACK | scopePUBACK | scopePUBREC | scopeSUBACK | scopeUNSUBACK | scopeDISCONNECT,
	ReasonServerUnavailable:          scopeCONNACK,
	ReasonServerBusy:                 scopeCONNACK | scopeDISCONNECT,
	ReasonBanned:                     scopeCONNACK,
	ReasonServerShuttingDown:         scopeDISCONNECT,
	ReasonBadAuthMethod:              scopeCONNACK,
	ReasonKeepAliveTimeout:           scopeDISCONNECT,
	ReasonSessionTakenOver:           scopeDISCONNECT,
	ReasonTopicFilterInvalid:         scopeSUBACK | scopeUNSUBACK | scopeDISCONNECT,
	ReasonTopicNameInvalid:           scopeCONNACK | scopePUBACK | scopePUBREC | scopeDISCONNECT,
	ReasonPacketIDInUse:              scopePUBACK | scopePUBREC | scopeSUBACK | scopeUNSUBACK,
	ReasonPacketIDNotFound:           scopePUBREL | scopePUBCOMP,
	ReasonReceiveMaxExceeded:         scopeDISCONNECT,
	ReasonTopicAliasInvalid:          scopeDISCONNECT,
	ReasonPacketTooLarge:             scopeCONNACK | scopeDISCONNECT,
	ReasonMessageRateTooHigh:         scopeDISCONNECT,
	ReasonQuotaExceeded:              scopeCONNACK | scopePUBACK | scopePUBREC | scopeSUBACK | scopeDISCONNECT,
	ReasonAdminAction:                scopeDISCONNECT,
	ReasonPayloadFormatInvalid:       scopeCONNACK | scopePUBACK | scopePUBREC | scopeDISCONNECT,
	ReasonRetainNotSupported:         scopeCONNACK | scopeDISCONNECT,
	ReasonQoSNotSupported:            scopeCONNACK | scopeDISCONNECT,
	ReasonUseAnotherServer:           scopeCONNACK | scopeDISCONNECT,
	ReasonServerMoved:                scopeCONNACK | scopeDISCONNECT,
	ReasonSharedSubsNotSupported:     scopeSUBACK | scopeDISCONNECT,
	ReasonConnectionRateExceeded:     scopeCONNACK | scopeDISCONNECT,
	ReasonMaxConnectTime:             scopeDISCONNECT,
	ReasonSubIDsNotSupported:         scopeSUBACK | scopeDISCONNECT,
	ReasonWildcardSubsNotSupported:   scopeSUBACK | scopeDISCONNECT,
}

func (r ReasonCode) validFor(s reasonScope) bool {
	return reasonScopes[r]&s != 0
}

// ValidForCONNACK reports whether the reason code is legal on CONNACK.
func (r ReasonCode) ValidForCONNACK() bool { return r.validFor(scopeCONNACK) }

// ValidForPUBACK reports whether the reason code is legal on PUBACK.
func (r ReasonCode) ValidForPUBACK() bool { return r.validFor(scopePUBACK) }

// ValidForPUBREC reports whether the reason code is legal on PUBREC.
func (r ReasonCode) ValidForPUBREC() bool { return r.validFor(scopePUBREC) }

// ValidForPUBREL reports whether the reason code is legal on PUBREL.
func (r ReasonCode) ValidForPUBREL() bool { return r.validFor(scopePUBREL) }

// ValidForPUBCOMP reports whether the reason code is legal on PUBCOMP.
func (r ReasonCode) ValidForPUBCOMP() bool { return r.validFor(scopePUBCOMP) }

// ValidForSUBACK reports whether the reason code is legal on SUBACK.
func (r ReasonCode) ValidForSUBACK() bool { return r.validFor(scopeSUBACK) }

// ValidForUNSUBACK reports whether the reason code is legal on UNSUBACK.
func (r ReasonCode) ValidForUNSUBACK() bool { return r.validFor(scopeUNSUBACK) }

// ValidForDISCONNECT reports whether the reason code is legal on DISCONNECT.
func (r ReasonCode) ValidForDISCONNECT() bool { return r.validFor(scopeDISCONNECT) }

// ValidForAUTH reports whether the reason code is legal on AUTH.
func (r ReasonCode) ValidForAUTH() bool { return r.validFor(scopeAUTH) }
