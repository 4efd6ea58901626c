package mqttv5

import (
	"errors"
	"fmt"
)

// PropertyContext identifies where in the protocol a set of properties is
// being encoded or decoded: either the variable header of a specific packet
// type, or the Will properties carried inside a CONNECT payload. Each
// property identifier only appears in a fixed set of contexts; ValidateFor
// rejects a Properties collection that carries a property outside the
// contexts it is defined for.
type PropertyContext uint16

// Packet-type contexts mirror the numeric packet type so a context can be
// derived directly from a PacketType with 1<<PacketType. PropCtxWill has no
// corresponding packet type on the wire; it occupies the bit a RESERVED
// packet type would have used.
const (
	PropCtxWill         PropertyContext = 1 << 0
	PropCtxCONNECT      PropertyContext = 1 << PacketCONNECT
	PropCtxCONNACK      PropertyContext = 1 << PacketCONNACK
	PropCtxPUBLISH      PropertyContext = 1 << PacketPUBLISH
	PropCtxPUBACK       PropertyContext = 1 << PacketPUBACK
	PropCtxPUBREC       PropertyContext = 1 << PacketPUBREC
	PropCtxPUBREL       PropertyContext = 1 << PacketPUBREL
	PropCtxPUBCOMP      PropertyContext = 1 << PacketPUBCOMP
	PropCtxSUBSCRIBE    PropertyContext = 1 << PacketSUBSCRIBE
	PropCtxSUBACK       PropertyContext = 1 << PacketSUBACK
	PropCtxUNSUBSCRIBE  PropertyContext = 1 << PacketUNSUBSCRIBE
	PropCtxUNSUBACK     PropertyContext = 1 << PacketUNSUBACK
	PropCtxPINGREQ      PropertyContext = 1 << PacketPINGREQ
	PropCtxPINGRESP     PropertyContext = 1 << PacketPINGRESP
	PropCtxDISCONNECT   PropertyContext = 1 << PacketDISCONNECT
	PropCtxAUTH         PropertyContext = 1 << PacketAUTH
	propCtxAll          PropertyContext = 0xFFFF
)

// ErrPropertyNotAllowed is returned when a property appears in a context
// the MQTT v5.0 specification does not permit it in.
var ErrPropertyNotAllowed = errors.New("property not allowed in this context")

// allowedPropertyContexts maps each property identifier to the set of
// contexts it may legally appear in, encoded as a bitmask of PropertyContext
// values. PropUserProperty is allowed everywhere, including Will properties.
var allowedPropertyContexts = map[PropertyID]PropertyContext{
	PropPayloadFormatIndicator:   PropCtxPUBLISH | PropCtxWill,
	PropMessageExpiryInterval:    PropCtxPUBLISH | PropCtxWill,
	PropContentType:              PropCtxPUBLISH | PropCtxWill,
	PropResponseTopic:            PropCtxPUBLISH | PropCtxWill,
	PropCorrelationData:          PropCtxPUBLISH | PropCtxWill,
	PropSubscriptionIdentifier:   PropCtxPUBLISH | PropCtxSUBSCRIBE,
	PropSessionExpiryInterval:    PropCtxCONNECT | PropCtxCONNACK | PropCtxDISCONNECT,
	PropAssignedClientIdentifier: PropCtxCONNACK,
	PropServerKeepAlive:          PropCtxCONNACK,
	PropAuthenticationMethod:     PropCtxCONNECT | PropCtxCONNACK | PropCtxAUTH,
	PropAuthenticationData:       PropCtxCONNECT | PropCtxCONNACK | PropCtxAUTH,
	PropRequestProblemInfo:       PropCtxCONNECT,
	PropWillDelayInterval:        PropCtxWill,
	PropRequestResponseInfo:      PropCtxCONNECT,
	PropResponseInformation:      PropCtxCONNACK,
	PropServerReference:          PropCtxCONNACK | PropCtxDISCONNECT,
	PropReasonString: PropCtxCONNACK | PropCtxPUBACK | PropCtxPUBREC | PropCtxPUBREL |
		PropCtxPUBCOMP | PropCtxSUBACK | PropCtxUNSUBACK | PropCtxDISCONNECT | PropCtxAUTH,
	PropReceiveMaximum:          PropCtxCONNECT | PropCtxCONNACK,
	PropTopicAliasMaximum:       PropCtxCONNECT | PropCtxCONNACK,
	PropTopicAlias:              PropCtxPUBLISH,
	PropMaximumQoS:              PropCtxCONNACK,
	PropRetainAvailable:         PropCtxCONNACK,
	PropUserProperty:            propCtxAll,
	PropMaximumPacketSize:       PropCtxCONNECT | PropCtxCONNACK,
	PropWildcardSubAvailable:    PropCtxCONNACK,
	PropSubscriptionIDAvailable: PropCtxCONNACK,
	PropSharedSubAvailable:      PropCtxCONNACK,
}

// IsAllowedIn reports whether the property identifier may legally appear in
// the given context.
func (p PropertyID) IsAllowedIn(ctx PropertyContext) bool {
	mask, ok := allowedPropertyContexts[p]
	if !ok {
		return false
	}
	return mask&ctx != 0
}

// ValidateFor checks that every property in the collection is permitted in
// the given context, returning ErrPropertyNotAllowed (wrapped with the
// offending identifier) on the first violation.
func (p *Properties) ValidateFor(ctx PropertyContext) error {
	if p == nil {
		return nil
	}
	for i := range p.props {
		id := p.props[i].id
		if !id.IsAllowedIn(ctx) {
			return &PropertyContextError{ID: id, Context: ctx}
		}
	}
	return nil
}

// PropertyContextError reports that a specific property identifier was
// found outside the contexts it is allowed in.
type PropertyContextError struct {
	ID      PropertyID
	Context PropertyContext
}

func (e *PropertyContextError) Error() string {
	return fmt.Sprintf("mqttv5: property 0x%02X not allowed in this context", byte(e.ID))
}

func (e *PropertyContextError) Unwrap() error { return ErrPropertyNotAllowed }
