package mqttv5

import (
	"bytes"
	"io"
)

// ackPacket is the wire shape shared by the four simple acknowledgment
// packets (PUBACK, PUBREC, PUBREL, PUBCOMP): a packet identifier followed
// by the reason+properties shortcut tail defined in reason_props.go.
type ackPacket struct {
	PacketID uint16
	reasonProps
}

// encodeAck encodes an acknowledgment packet with the given packet type and flags.
func encodeAck(w io.Writer, packetType PacketType, flags byte, ack *ackPacket) (int, error) {
	var buf bytes.Buffer

	if _, err := buf.Write([]byte{byte(ack.PacketID >> 8), byte(ack.PacketID)}); err != nil {
		return 0, err
	}

	if err := encodeReasonProps(&buf, &ack.reasonProps); err != nil {
		return buf.Len(), err
	}

	header := FixedHeader{
		PacketType:      packetType,
		Flags:           flags,
		RemainingLength: uint32(buf.Len()),
	}

	total, err := header.Encode(w)
	if err != nil {
		return total, err
	}

	n, err := w.Write(buf.Bytes())
	return total + n, err
}

// decodeAck decodes an acknowledgment packet with property validation.
func decodeAck(r io.Reader, header FixedHeader, ack *ackPacket, propCtx PropertyContext) (int, error) {
	var idBuf [2]byte
	totalRead, err := io.ReadFull(r, idBuf[:])
	if err != nil {
		return totalRead, err
	}
	ack.PacketID = uint16(idBuf[0])<<8 | uint16(idBuf[1])

	remaining := int(header.RemainingLength) - totalRead
	n, err := decodeReasonProps(r, remaining, &ack.reasonProps, propCtx)
	totalRead += n
	return totalRead, err
}
