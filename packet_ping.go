package mqttv5

import "io"

// encodeEmptyPacket writes a fixed header with no variable header or
// payload, the shape both PINGREQ and PINGRESP take.
func encodeEmptyPacket(w io.Writer, packetType PacketType) (int, error) {
	header := FixedHeader{
		PacketType:      packetType,
		Flags:           0x00,
		RemainingLength: 0,
	}
	return header.Encode(w)
}

// decodeEmptyPacket validates a fixed header that should carry nothing
// past itself, the decode-side counterpart of encodeEmptyPacket.
func decodeEmptyPacket(header FixedHeader, packetType PacketType) (int, error) {
	if header.PacketType != packetType {
		return 0, ErrInvalidPacketType
	}
	if header.Flags != 0x00 {
		return 0, ErrInvalidPacketFlags
	}
	if header.RemainingLength != 0 {
		return 0, ErrProtocolViolation
	}
	return 0, nil
}

// PingreqPacket represents an MQTT PINGREQ packet.
// MQTT v5.0 spec: Section 3.12
type PingreqPacket struct{}

// Type returns the packet type.
func (p *PingreqPacket) Type() PacketType { return PacketPINGREQ }

// Encode writes the packet to the writer.
func (p *PingreqPacket) Encode(w io.Writer) (int, error) {
	return encodeEmptyPacket(w, PacketPINGREQ)
}

// Decode reads the packet from the reader.
func (p *PingreqPacket) Decode(_ io.Reader, header FixedHeader) (int, error) {
	return decodeEmptyPacket(header, PacketPINGREQ)
}

// Validate validates the packet contents.
func (p *PingreqPacket) Validate() error {
	return nil
}

// PingrespPacket represents an MQTT PINGRESP packet.
// MQTT v5.0 spec: Section 3.13
type PingrespPacket struct{}

// Type returns the packet type.
func (p *PingrespPacket) Type() PacketType { return PacketPINGRESP }

// Encode writes the packet to the writer.
func (p *PingrespPacket) Encode(w io.Writer) (int, error) {
	return encodeEmptyPacket(w, PacketPINGRESP)
}

// Decode reads the packet from the reader.
func (p *PingrespPacket) Decode(_ io.Reader, header FixedHeader) (int, error) {
	return decodeEmptyPacket(header, PacketPINGRESP)
}

// Validate validates the packet contents.
func (p *PingrespPacket) Validate() error {
	return nil
}
