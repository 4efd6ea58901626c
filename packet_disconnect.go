package mqttv5

import (
	"bytes"
	"io"
)

// DisconnectPacket represents an MQTT DISCONNECT packet. Its variable
// header is nothing but the reasonProps shortcut tail (no packet
// identifier), the same shape AuthPacket uses.
// MQTT v5.0 spec: Section 3.14
type DisconnectPacket struct {
	reasonProps
}

// Type returns the packet type.
func (p *DisconnectPacket) Type() PacketType { return PacketDISCONNECT }

// Properties returns a pointer to the packet's properties.
func (p *DisconnectPacket) Properties() *Properties { return &p.Props }

// Encode writes the packet to the writer.
func (p *DisconnectPacket) Encode(w io.Writer) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := p.Props.ValidateFor(PropCtxDISCONNECT); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := encodeReasonProps(&buf, &p.reasonProps); err != nil {
		return buf.Len(), err
	}

	header := FixedHeader{
		PacketType:      PacketDISCONNECT,
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
func (p *DisconnectPacket) Decode(r io.Reader, header FixedHeader) (int, error) {
	if header.PacketType != PacketDISCONNECT {
		return 0, ErrInvalidPacketType
	}
	if header.Flags != 0x00 {
		return 0, ErrInvalidPacketFlags
	}

	return decodeReasonProps(r, int(header.RemainingLength), &p.reasonProps, PropCtxDISCONNECT)
}

// Validate validates the packet contents.
func (p *DisconnectPacket) Validate() error {
	if !p.ReasonCode.ValidForDISCONNECT() {
		return ErrInvalidReasonCode
	}
	return nil
}
