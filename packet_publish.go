package mqttv5

import (
	"bytes"
	"errors"
	"io"
)

// PUBLISH packet errors.
var (
	ErrTopicNameEmpty   = errors.New("topic name cannot be empty")
	ErrInvalidQoS       = errors.New("invalid QoS level")
	ErrPacketIDRequired = errors.New("packet identifier required for QoS > 0")
)

// PublishPacket represents an MQTT PUBLISH packet.
// MQTT v5.0 spec: Section 3.3
type PublishPacket struct {
	// Topic is the topic name.
	Topic string

	// Payload is the application message.
	Payload []byte

	// QoS is the Quality of Service level (0, 1, or 2).
	QoS byte

	// Retain indicates if the message should be retained.
	Retain bool

	// DUP indicates if this is a retransmission.
	DUP bool

	// PacketID is the packet identifier (only for QoS > 0).
	PacketID uint16

	// Props contains the PUBLISH properties.
	Props Properties
}

// Type returns the packet type.
func (p *PublishPacket) Type() PacketType {
	return PacketPUBLISH
}

// Properties returns a pointer to the packet's properties.
func (p *PublishPacket) Properties() *Properties {
	return &p.Props
}

// GetPacketID returns the packet identifier.
func (p *PublishPacket) GetPacketID() uint16 {
	return p.PacketID
}

// SetPacketID sets the packet identifier.
func (p *PublishPacket) SetPacketID(id uint16) {
	p.PacketID = id
}

// flags returns the fixed header flags.
func (p *PublishPacket) flags() byte {
	var flags byte
	if p.DUP {
		flags |= 0x08
	}
	flags |= (p.QoS & 0x03) << 1
	if p.Retain {
		flags |= 0x01
	}
	return flags
}

// setFlags parses the fixed header flags.
func (p *PublishPacket) setFlags(flags byte) {
	p.DUP = flags&0x08 != 0
	p.QoS = (flags >> 1) & 0x03
	p.Retain = flags&0x01 != 0
}

// Encode writes the packet to the writer.
func (p *PublishPacket) Encode(w io.Writer) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := p.Props.ValidateFor(PropCtxPUBLISH); err != nil {
		return 0, err
	}

	var buf bytes.Buffer

	// Topic Name
	n, err := encodeString(&buf, p.Topic)
	if err != nil {
		return 0, err
	}
	_ = n

	// Packet Identifier (only for QoS > 0)
	if p.QoS > 0 {
		_, err = buf.Write([]byte{byte(p.PacketID >> 8), byte(p.PacketID)})
		if err != nil {
			return 0, err
		}
	}

	// Properties
	_, err = p.Props.Encode(&buf)
	if err != nil {
		return 0, err
	}

	// Payload
	_, err = buf.Write(p.Payload)
	if err != nil {
		return 0, err
	}

	// Write fixed header
	header := FixedHeader{
		PacketType:      PacketPUBLISH,
		Flags:           p.flags(),
		RemainingLength: uint32(buf.Len()),
	}

	total, err := header.Encode(w)
	if err != nil {
		return total, err
	}

	// Write variable header and payload
	n2, err := w.Write(buf.Bytes())
	return total + n2, err
}

// Decode reads the packet from the reader.
func (p *PublishPacket) Decode(r io.Reader, header FixedHeader) (int, error) {
	if header.PacketType != PacketPUBLISH {
		return 0, ErrInvalidPacketType
	}

	p.setFlags(header.Flags)

	// Validate QoS
	if p.QoS > 2 {
		return 0, ErrInvalidQoS
	}

	var totalRead int

	// Topic Name
	var n int
	var err error
	p.Topic, n, err = decodeString(r)
	totalRead += n
	if err != nil {
		return totalRead, err
	}

	// Packet Identifier (only for QoS > 0)
	if p.QoS > 0 {
		var idBuf [2]byte
		n, err = io.ReadFull(r, idBuf[:])
		totalRead += n
		if err != nil {
			return totalRead, err
		}
		p.PacketID = uint16(idBuf[0])<<8 | uint16(idBuf[1])
	}

	// Properties
	n, err = p.Props.Decode(r)
	totalRead += n
	if err != nil {
		return totalRead, err
	}
	if err := p.Props.ValidateFor(PropCtxPUBLISH); err != nil {
		return totalRead, err
	}

	// Payload - read remaining bytes
	payloadLen := int(header.RemainingLength) - totalRead
	if payloadLen > 0 {
		p.Payload = make([]byte, payloadLen)
		n, err = io.ReadFull(r, p.Payload)
		totalRead += n
		if err != nil {
			return totalRead, err
		}
	}

	return totalRead, nil
}

// Validate validates the packet contents.
func (p *PublishPacket) Validate() error {
	// QoS must be 0, 1, or 2
	if p.QoS > 2 {
		return ErrInvalidQoS
	}

	// DUP must be 0 for QoS 0
	if p.QoS == 0 && p.DUP {
		return ErrInvalidPacketFlags
	}

	// Packet ID is required for QoS > 0
	if p.QoS > 0 && p.PacketID == 0 {
		return ErrPacketIDRequired
	}

	return nil
}

// PublishView is the zero-copy counterpart of PublishPacket: Topic and
// Payload alias the source buffer instead of being copied out of it, and
// Props is a lazy cursor rather than a materialized collection. It is
// the form a client that parses directly out of a reusable read buffer
// should use, since it never allocates during decode.
type PublishView struct {
	Topic    StringView
	Payload  []byte
	QoS      byte
	Retain   bool
	DUP      bool
	PacketID uint16
	Props    ViewProperties
}

// DecodeViewPublish decodes a PUBLISH packet's variable header and
// payload from buf — the bytes CheckHeader or FrameLength located after
// the fixed header, sized to header.RemainingLength — without copying
// Topic or Payload out of buf. The caller must keep buf alive and
// unmodified for as long as the returned PublishView is used.
func DecodeViewPublish(buf []byte, header FixedHeader) (PublishView, error) {
	if header.PacketType != PacketPUBLISH {
		return PublishView{}, ErrInvalidPacketType
	}

	qos := (header.Flags >> 1) & 0x03
	if qos > 2 {
		return PublishView{}, ErrInvalidQoS
	}

	v := PublishView{
		QoS:    qos,
		DUP:    header.Flags&0x08 != 0,
		Retain: header.Flags&0x01 != 0,
	}

	topic, n, err := decodeStringView(buf)
	if err != nil {
		return PublishView{}, err
	}
	v.Topic = topic
	buf = buf[n:]

	if v.QoS > 0 {
		if len(buf) < 2 {
			return PublishView{}, ErrShortBuffer
		}
		v.PacketID = uint16(buf[0])<<8 | uint16(buf[1])
		buf = buf[2:]
	}

	props, n, err := DecodeViewProperties(buf)
	if err != nil {
		return PublishView{}, err
	}
	v.Props = props
	buf = buf[n:]

	v.Payload = buf
	return v, nil
}

// Owned copies a PublishView into an owning PublishPacket, materializing
// Topic, Payload, and every property so the result no longer aliases the
// source buffer. Used where a view decode is followed by retention past
// the lifetime of the read buffer it aliased.
func (v PublishView) Owned() (*PublishPacket, error) {
	p := &PublishPacket{
		Topic:    v.Topic.String(),
		Payload:  append([]byte(nil), v.Payload...),
		QoS:      v.QoS,
		Retain:   v.Retain,
		DUP:      v.DUP,
		PacketID: v.PacketID,
	}

	cursor := v.Props
	for {
		pv, ok, err := cursor.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch pv.Type {
		case PropTypeByte:
			p.Props.Add(pv.ID, pv.Byte())
		case PropTypeTwoByteInt:
			p.Props.Add(pv.ID, pv.Uint16())
		case PropTypeFourByteInt, PropTypeVarInt:
			p.Props.Add(pv.ID, pv.Uint32())
		case PropTypeString:
			p.Props.Add(pv.ID, pv.String().String())
		case PropTypeBinary:
			p.Props.Add(pv.ID, append([]byte(nil), pv.Binary().Bytes()...))
		case PropTypeStringPair:
			pair := pv.Pair()
			p.Props.Add(pv.ID, StringPair{Key: pair.Key.String(), Value: pair.Value.String()})
		}
	}

	return p, nil
}
