// Package mqttv5 implements the MQTT v5.0 wire-format codec: encoding and
// decoding of the 14 control packet types defined by the OASIS MQTT Version
// 5.0 Standard (https://docs.oasis-open.org/mqtt/mqtt/v5.0/mqtt-v5.0.html).
//
// The package is a pure codec. It has no opinion about transport, session
// persistence, topic matching, authentication, or scheduling — callers
// supply an io.Reader/io.Writer (a TCP connection, a bytes.Buffer, anything)
// and get back in-memory packet values, or vice versa.
//
// # Packet types
//
//   - ConnectPacket, ConnackPacket: connection establishment
//   - PublishPacket, PubackPacket, PubrecPacket, PubrelPacket, PubcompPacket: message delivery
//   - SubscribePacket, SubackPacket: topic subscription
//   - UnsubscribePacket, UnsubackPacket: topic unsubscription
//   - PingreqPacket, PingrespPacket: keep-alive
//   - DisconnectPacket: connection termination
//   - AuthPacket: enhanced (multi-step) authentication
//
// # Reading and writing packets
//
// ReadPacket decodes one full control packet from a reader. WritePacket
// encodes a packet and writes it to a writer:
//
//	pkt, n, err := mqttv5.ReadPacket(conn, maxPacketSize)
//	n, err := mqttv5.WritePacket(conn, pkt, maxPacketSize)
//
// Both functions return the number of bytes read or written. When the
// reader ends before the frame's remaining-length is satisfied, ReadPacket
// returns io.ReadFull's error unchanged: io.ErrUnexpectedEOF if part of the
// frame body arrived, io.EOF if none of it did.
//
// # Properties
//
// MQTT v5.0's variable-header properties are modeled by Properties, a
// typed accumulator over the 27 legal property identifiers (PropertyID).
// Set/Add/Get accessors are typed per the property's wire shape (byte,
// uint16, uint32, variable-length integer, string, binary, or string
// pair); User Property and Subscription Identifier are the only
// identifiers that may repeat. Encode and Decode on each packet reject
// properties that are not legal for that packet's context, per the
// allowed-property matrix in properties_context.go.
//
// # Owning and view decoding
//
// Decode always produces an owning packet value: strings and binaries are
// copied out of the source reader, safe to retain past the call. The view
// decoders (DecodeViewProperties, DecodeViewPublish, and CheckHeader and
// FrameLength for frame boundaries) work over an already-buffered []byte
// without copying — the returned
// StringView/BinaryView aliases the input slice and is valid only as long
// as the caller keeps that slice alive. Use the view form when a whole
// frame is already in a reusable buffer and the decoded fields are
// consumed before the buffer is reused (see ViewProperties in
// properties.go).
//
// # Validation
//
// Decode never panics on malformed input — it returns an error. Validate is
// a separate pass: WritePacket runs it before encoding, and so does Encode
// on every packet type except PINGREQ and PINGRESP, while Decode and
// ReadPacket never run it. It checks field values such as QoS range,
// packet-identifier presence against QoS, and reason codes for the packet
// type. Fixed-header flag bits are checked by FixedHeader.ValidateFlags and,
// for some packet types, by Decode; the allowed-property matrix is checked
// by Encode and Decode.
package mqttv5
