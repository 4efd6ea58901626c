package mqttv5

import (
	"bytes"
	"io"
)

// AuthPacket represents an MQTT AUTH packet, used to carry an extended
// authentication exchange (e.g. SCRAM) between client and server. Its
// variable header is the same reasonProps shortcut tail DisconnectPacket
// uses, since AUTH also carries no packet identifier.
// MQTT v5.0 spec: Section 3.15
type AuthPacket struct {
	reasonProps
}

// Type returns the packet type.
func (p *AuthPacket) Type() PacketType { return PacketAUTH }

// Properties returns a pointer to the packet's properties.
func (p *AuthPacket) Properties() *Properties { return &p.Props }

// Encode writes the packet to the writer.
func (p *AuthPacket) Encode(w io.Writer) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := p.Props.ValidateFor(PropCtxAUTH); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := encodeReasonProps(&buf, &p.reasonProps); err != nil {
		return buf.Len(), err
	}

	header := FixedHeader{
		PacketType:      PacketAUTH,
		Flags:           0x00,
		RemainingLength: uint32(buf.Len()),
	}

	total, err := header.Encode(w)
	if err != nil {
		return total, err
	}

	n, err := w.Write(buf.Bytes())
	return total + n, err
}

// Decode reads the packet from the reader.
func (p *AuthPacket) Decode(r io.Reader, header FixedHeader) (int, error) {
	if header.PacketType != PacketAUTH {
		return 0, ErrInvalidPacketType
	}
	if header.Flags != 0x00 {
		return 0, ErrInvalidPacketFlags
	}

	return decodeReasonProps(r, int(header.RemainingLength), &p.reasonProps, PropCtxAUTH)
}

// Validate validates the packet contents.
func (p *AuthPacket) Validate() error {
	if !p.ReasonCode.ValidForAUTH() {
		return ErrInvalidReasonCode
	}
	return nil
}
