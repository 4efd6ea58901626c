package mqttv5

import (
	"bytes"
	"io"
)

// reasonProps is the reason-code-plus-property-list tail shared by every
// packet type that follows the "shortcut rule": DISCONNECT and AUTH carry
// it directly as their whole variable header, and the four PUBACK-family
// acknowledgment packets (packet_ack.go) carry it after a packet
// identifier. A reason code of Success with no properties need not be
// present on the wire at all.
type reasonProps struct {
	ReasonCode ReasonCode
	Props      Properties
}

// encodeReasonProps appends the shortcut-rule tail to buf: nothing at all
// when the reason is Success and no properties are set, otherwise the
// reason byte followed by the property list when non-empty.
func encodeReasonProps(buf *bytes.Buffer, rp *reasonProps) error {
	if rp.ReasonCode == ReasonSuccess && rp.Props.Len() == 0 {
		return nil
	}

	if err := buf.WriteByte(byte(rp.ReasonCode)); err != nil {
		return err
	}

	if rp.Props.Len() > 0 {
		if _, err := rp.Props.Encode(buf); err != nil {
			return err
		}
	}

	return nil
}

// decodeReasonProps reads the shortcut-rule tail from r. remaining is how
// many bytes of the fixed header's RemainingLength are still unconsumed at
// the point this is called — the whole remaining length for DISCONNECT and
// AUTH, or remaining length minus the packet ID already read for the ack
// packets. A remaining of zero means no reason byte is present and the
// reason defaults to Success, matching the shortcut rule; a remaining of
// exactly one byte is the reason code alone, with no property list.
func decodeReasonProps(r io.Reader, remaining int, rp *reasonProps, propCtx PropertyContext) (int, error) {
	if remaining <= 0 {
		rp.ReasonCode = ReasonSuccess
		return 0, nil
	}

	var totalRead int

	var reasonBuf [1]byte
	n, err := io.ReadFull(r, reasonBuf[:])
	totalRead += n
	if err != nil {
		return totalRead, err
	}
	rp.ReasonCode = ReasonCode(reasonBuf[0])

	if remaining > 1 {
		n, err = rp.Props.Decode(r)
		totalRead += n
		if err != nil {
			return totalRead, err
		}
		if err := rp.Props.ValidateFor(propCtx); err != nil {
			return totalRead, err
		}
	}

	return totalRead, nil
}
