package mqttv5

import (
	"errors"
	"io"
)

var (
	ErrPacketTooLarge    = errors.New("mqttv5: packet exceeds maximum size")
	ErrUnknownPacketType = errors.New("mqttv5: unknown packet type")
)

// packetFactories dispatches a PacketType to a constructor for its zero
// value, replacing a type-switch with a table indexed the same way
// requiredFlags in fixed_header.go is: one slot per PacketType, nil for
// anything not a valid control packet.
var packetFactories = [16]func() Packet{
	PacketCONNECT:     func() Packet { return &ConnectPacket{} },
	PacketCONNACK:     func() Packet { return &ConnackPacket{} },
	PacketPUBLISH:     func() Packet { return &PublishPacket{} },
	PacketPUBACK:      func() Packet { return &PubackPacket{} },
	PacketPUBREC:      func() Packet { return &PubrecPacket{} },
	PacketPUBREL:      func() Packet { return &PubrelPacket{} },
	PacketPUBCOMP:     func() Packet { return &PubcompPacket{} },
	PacketSUBSCRIBE:   func() Packet { return &SubscribePacket{} },
	PacketSUBACK:      func() Packet { return &SubackPacket{} },
	PacketUNSUBSCRIBE: func() Packet { return &UnsubscribePacket{} },
	PacketUNSUBACK:    func() Packet { return &UnsubackPacket{} },
	PacketPINGREQ:     func() Packet { return &PingreqPacket{} },
	PacketPINGRESP:    func() Packet { return &PingrespPacket{} },
	PacketDISCONNECT:  func() Packet { return &DisconnectPacket{} },
	PacketAUTH:        func() Packet { return &AuthPacket{} },
}

func newPacketForType(pt PacketType) (Packet, error) {
	if int(pt) >= len(packetFactories) {
		return nil, ErrUnknownPacketType
	}
	factory := packetFactories[pt]
	if factory == nil {
		return nil, ErrUnknownPacketType
	}
	return factory(), nil
}

// FrameLength inspects the start of buf and, once it holds a complete
// fixed header, returns the total length of the frame the header
// introduces (fixed header plus Remaining Length bytes of variable
// header and payload). A caller reading off a streaming transport can
// buffer until it holds at least this many bytes before handing the
// frame to ReadPacket or a view decoder — the "needs more data" half of
// decoding a packet from an untrusted byte stream.
//
// It returns ErrShortBuffer if buf does not yet contain a complete fixed
// header, which is distinct from a malformed header: the caller should
// read more and try again rather than reject the connection.
func FrameLength(buf []byte) (int, error) {
	h, n, err := CheckHeader(buf)
	if err != nil {
		return 0, err
	}
	return n + int(h.RemainingLength), nil
}

// ReadPacket reads a complete MQTT packet from the reader.
// If maxSize is greater than 0, packets larger than maxSize will return ErrPacketTooLarge.
func ReadPacket(r io.Reader, maxSize uint32) (Packet, int, error) {
	var header FixedHeader
	n, err := header.Decode(r)
	if err != nil {
		return nil, n, err
	}

	// Check max size
	if maxSize > 0 && uint64(n)+uint64(header.RemainingLength) > uint64(maxSize) {
		return nil, n, ErrPacketTooLarge
	}

	// Read remaining bytes
	remaining := make([]byte, header.RemainingLength)
	if header.RemainingLength > 0 {
		rn, err := io.ReadFull(r, remaining)
		n += rn
		if err != nil {
			return nil, n, err
		}
	}

	packet, err := newPacketForType(header.PacketType)
	if err != nil {
		return nil, n, err
	}

	// Decode packet
	reader := newBytesReader(remaining)
	_, err = packet.Decode(reader, header)
	if err != nil {
		return nil, n, err
	}

	return packet, n, nil
}

// WritePacket writes a complete MQTT packet to the writer.
// If maxSize is greater than 0, packets larger than maxSize will return ErrPacketTooLarge.
func WritePacket(w io.Writer, packet Packet, maxSize uint32) (int, error) {
	if err := packet.Validate(); err != nil {
		return 0, err
	}

	// If max size check is needed, encode to buffer first
	if maxSize > 0 {
		var buf bytesBuffer
		n, err := packet.Encode(&buf)
		if err != nil {
			return 0, err
		}
		if uint32(n) > maxSize {
			return 0, ErrPacketTooLarge
		}
		return w.Write(buf.Bytes())
	}

	return packet.Encode(w)
}

// bytesReader wraps a byte slice for io.Reader interface.
type bytesReader struct {
	data []byte
	pos  int
}

func newBytesReader(data []byte) *bytesReader {
	return &bytesReader{data: data}
}

func (r *bytesReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// bytesBuffer is a simple buffer for encoding.
type bytesBuffer struct {
	data []byte
}

func (b *bytesBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *bytesBuffer) Bytes() []byte {
	return b.data
}
