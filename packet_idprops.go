package mqttv5

import (
	"bytes"
	"io"
)

// encodePacketIDAndProps writes the packet-identifier-then-property-list
// variable header shared by SUBSCRIBE, SUBACK, UNSUBSCRIBE and UNSUBACK, ahead of whichever
// payload list each one appends after it.
func encodePacketIDAndProps(buf *bytes.Buffer, packetID uint16, props *Properties) error {
	if _, err := buf.Write([]byte{byte(packetID >> 8), byte(packetID)}); err != nil {
		return err
	}
	_, err := props.Encode(buf)
	return err
}

// decodePacketIDAndProps reads that same packet-identifier-then-property-list
// header from r and validates the properties against propCtx, returning the
// packet identifier and the number of bytes consumed.
func decodePacketIDAndProps(r io.Reader, props *Properties, propCtx PropertyContext) (uint16, int, error) {
	var idBuf [2]byte
	totalRead, err := io.ReadFull(r, idBuf[:])
	if err != nil {
		return 0, totalRead, err
	}
	packetID := uint16(idBuf[0])<<8 | uint16(idBuf[1])

	n, err := props.Decode(r)
	totalRead += n
	if err != nil {
		return packetID, totalRead, err
	}
	if err := props.ValidateFor(propCtx); err != nil {
		return packetID, totalRead, err
	}

	return packetID, totalRead, nil
}
