package mqttv5

import (
	"errors"
	"io"
)

// PropertyID represents an MQTT v5.0 property identifier.
type PropertyID byte

// Property identifiers as defined in MQTT v5.0 specification.
const (
	PropPayloadFormatIndicator   PropertyID = 0x01
	PropMessageExpiryInterval    PropertyID = 0x02
	PropContentType              PropertyID = 0x03
	PropResponseTopic            PropertyID = 0x08
	PropCorrelationData          PropertyID = 0x09
	PropSubscriptionIdentifier   PropertyID = 0x0B
	PropSessionExpiryInterval    PropertyID = 0x11
	PropAssignedClientIdentifier PropertyID = 0x12
	PropServerKeepAlive          PropertyID = 0x13
	PropAuthenticationMethod     PropertyID = 0x15
	PropAuthenticationData       PropertyID = 0x16
	PropRequestProblemInfo       PropertyID = 0x17
	PropWillDelayInterval        PropertyID = 0x18
	PropRequestResponseInfo      PropertyID = 0x19
	PropResponseInformation      PropertyID = 0x1A
	PropServerReference          PropertyID = 0x1C
	PropReasonString             PropertyID = 0x1F
	PropReceiveMaximum           PropertyID = 0x21
	PropTopicAliasMaximum        PropertyID = 0x22
	PropTopicAlias               PropertyID = 0x23
	PropMaximumQoS               PropertyID = 0x24
	PropRetainAvailable          PropertyID = 0x25
	PropUserProperty             PropertyID = 0x26
	PropMaximumPacketSize        PropertyID = 0x27
	PropWildcardSubAvailable     PropertyID = 0x28
	PropSubscriptionIDAvailable  PropertyID = 0x29
	PropSharedSubAvailable       PropertyID = 0x2A
)

// PropertyType represents the data type of a property value.
type PropertyType byte

const (
	PropTypeByte        PropertyType = 0 // Single byte
	PropTypeTwoByteInt  PropertyType = 1 // Two byte integer (uint16)
	PropTypeFourByteInt PropertyType = 2 // Four byte integer (uint32)
	PropTypeVarInt      PropertyType = 3 // Variable byte integer
	PropTypeString      PropertyType = 4 // UTF-8 encoded string
	PropTypeBinary      PropertyType = 5 // Binary data
	PropTypeStringPair  PropertyType = 6 // UTF-8 string pair
)

// propertyTypeEntry pairs a property identifier with its wire shape. The
// table is walked by lookupPropertyType rather than hashed, because the
// set is small (27 entries) and fixed by the specification: a flat array
// scanned linearly carries no hashing overhead and keeps the identifier
// list and its types declared next to each other in identifier order.
type propertyTypeEntry struct {
	id  PropertyID
	typ PropertyType
}

var propertyTypeTable = [...]propertyTypeEntry{
	{PropPayloadFormatIndicator, PropTypeByte},
	{PropMessageExpiryInterval, PropTypeFourByteInt},
	{PropContentType, PropTypeString},
	{PropResponseTopic, PropTypeString},
	{PropCorrelationData, PropTypeBinary},
	{PropSubscriptionIdentifier, PropTypeVarInt},
	{PropSessionExpiryInterval, PropTypeFourByteInt},
	{PropAssignedClientIdentifier, PropTypeString},
	{PropServerKeepAlive, PropTypeTwoByteInt},
	{PropAuthenticationMethod, PropTypeString},
	{PropAuthenticationData, PropTypeBinary},
	{PropRequestProblemInfo, PropTypeByte},
	{PropWillDelayInterval, PropTypeFourByteInt},
	{PropRequestResponseInfo, PropTypeByte},
	{PropResponseInformation, PropTypeString},
	{PropServerReference, PropTypeString},
	{PropReasonString, PropTypeString},
	{PropReceiveMaximum, PropTypeTwoByteInt},
	{PropTopicAliasMaximum, PropTypeTwoByteInt},
	{PropTopicAlias, PropTypeTwoByteInt},
	{PropMaximumQoS, PropTypeByte},
	{PropRetainAvailable, PropTypeByte},
	{PropUserProperty, PropTypeStringPair},
	{PropMaximumPacketSize, PropTypeFourByteInt},
	{PropWildcardSubAvailable, PropTypeByte},
	{PropSubscriptionIDAvailable, PropTypeByte},
	{PropSharedSubAvailable, PropTypeByte},
}

// lookupPropertyType returns the wire shape for id and whether id is one
// of the 27 identifiers the specification defines.
func lookupPropertyType(id PropertyID) (PropertyType, bool) {
	for i := range propertyTypeTable {
		if propertyTypeTable[i].id == id {
			return propertyTypeTable[i].typ, true
		}
	}
	return 0, false
}

// PropertyType returns the data type for this property ID.
func (p PropertyID) PropertyType() PropertyType {
	if t, ok := lookupPropertyType(p); ok {
		return t
	}
	return PropTypeByte // default
}

// Property errors.
var (
	ErrUnknownPropertyID      = errors.New("unknown property identifier")
	ErrInvalidPropertyType    = errors.New("invalid property type for identifier")
	ErrDuplicateProperty      = errors.New("duplicate property not allowed")
	ErrPropertyLengthMismatch = errors.New("property list consumed more or fewer bytes than its declared length")
)

// Properties represents a collection of MQTT v5.0 properties.
type Properties struct {
	props []property
}

type property struct {
	id    PropertyID
	value any
}

// Len returns the number of properties in the collection.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.props)
}

// Has returns true if the property with the given ID exists.
func (p *Properties) Has(id PropertyID) bool {
	if p == nil {
		return false
	}
	for i := range p.props {
		if p.props[i].id == id {
			return true
		}
	}
	return false
}

// Get returns the value of the property with the given ID.
// Returns nil if the property does not exist.
func (p *Properties) Get(id PropertyID) any {
	if p == nil {
		return nil
	}
	for i := range p.props {
		if p.props[i].id == id {
			return p.props[i].value
		}
	}
	return nil
}

// GetAll returns all values for properties with the given ID.
// Useful for properties that can appear multiple times (e.g., UserProperty, SubscriptionIdentifier).
func (p *Properties) GetAll(id PropertyID) []any {
	if p == nil {
		return nil
	}
	var result []any
	for i := range p.props {
		if p.props[i].id == id {
			result = append(result, p.props[i].value)
		}
	}
	return result
}

// Set sets a property value. For properties that can only appear once,
// this replaces any existing value.
func (p *Properties) Set(id PropertyID, value any) {
	if p == nil {
		return
	}
	// Check if property already exists and replace it
	for i := range p.props {
		if p.props[i].id == id {
			p.props[i].value = value
			return
		}
	}
	p.props = append(p.props, property{id: id, value: value})
}

// Add adds a property value. Use this for properties that can appear multiple times.
func (p *Properties) Add(id PropertyID, value any) {
	if p == nil {
		return
	}
	p.props = append(p.props, property{id: id, value: value})
}

// Delete removes all properties with the given ID.
func (p *Properties) Delete(id PropertyID) {
	if p == nil {
		return
	}
	n := 0
	for i := range p.props {
		if p.props[i].id != id {
			p.props[n] = p.props[i]
			n++
		}
	}
	p.props = p.props[:n]
}

// Typed getters

// GetByte returns the byte value of a property, or 0 if not found.
func (p *Properties) GetByte(id PropertyID) byte {
	v := p.Get(id)
	if v == nil {
		return 0
	}
	if b, ok := v.(byte); ok {
		return b
	}
	return 0
}

// GetUint16 returns the uint16 value of a property, or 0 if not found.
func (p *Properties) GetUint16(id PropertyID) uint16 {
	v := p.Get(id)
	if v == nil {
		return 0
	}
	if u, ok := v.(uint16); ok {
		return u
	}
	return 0
}

// GetUint32 returns the uint32 value of a property, or 0 if not found.
func (p *Properties) GetUint32(id PropertyID) uint32 {
	v := p.Get(id)
	if v == nil {
		return 0
	}
	if u, ok := v.(uint32); ok {
		return u
	}
	return 0
}

// GetString returns the string value of a property, or empty string if not found.
func (p *Properties) GetString(id PropertyID) string {
	v := p.Get(id)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// GetBinary returns the binary value of a property, or nil if not found.
func (p *Properties) GetBinary(id PropertyID) []byte {
	v := p.Get(id)
	if v == nil {
		return nil
	}
	if b, ok := v.([]byte); ok {
		return b
	}
	return nil
}

// GetStringPair returns the string pair value of a property, or zero value if not found.
func (p *Properties) GetStringPair(id PropertyID) StringPair {
	v := p.Get(id)
	if v == nil {
		return StringPair{}
	}
	if sp, ok := v.(StringPair); ok {
		return sp
	}
	return StringPair{}
}

// GetAllStringPairs returns all string pair values for the given property ID.
func (p *Properties) GetAllStringPairs(id PropertyID) []StringPair {
	all := p.GetAll(id)
	if all == nil {
		return nil
	}
	result := make([]StringPair, 0, len(all))
	for _, v := range all {
		if sp, ok := v.(StringPair); ok {
			result = append(result, sp)
		}
	}
	return result
}

// GetAllVarInts returns all variable integer values for the given property ID.
func (p *Properties) GetAllVarInts(id PropertyID) []uint32 {
	all := p.GetAll(id)
	if all == nil {
		return nil
	}
	result := make([]uint32, 0, len(all))
	for _, v := range all {
		if u, ok := v.(uint32); ok {
			result = append(result, u)
		}
	}
	return result
}

// Encode writes the properties to the writer.
// Returns the number of bytes written.
func (p *Properties) Encode(w io.Writer) (int, error) {
	if p == nil || len(p.props) == 0 {
		return encodeVarint(w, 0)
	}

	// Calculate the size of the properties
	size := p.size()

	// Write the length as a variable byte integer
	n, err := encodeVarint(w, uint32(size))
	if err != nil {
		return n, err
	}

	// Write each property
	for i := range p.props {
		prop := &p.props[i]
		n2, err := p.encodeProperty(w, prop)
		n += n2
		if err != nil {
			return n, err
		}
	}

	return n, nil
}

func (p *Properties) encodeProperty(w io.Writer, prop *property) (int, error) {
	// Write property ID
	n, err := w.Write([]byte{byte(prop.id)})
	if err != nil {
		return n, err
	}

	// Write value based on type
	propType := prop.id.PropertyType()
	var n2 int

	switch propType {
	case PropTypeByte:
		b, _ := prop.value.(byte)
		n2, err = w.Write([]byte{b})

	case PropTypeTwoByteInt:
		v, _ := prop.value.(uint16)
		n2, err = w.Write([]byte{byte(v >> 8), byte(v)})

	case PropTypeFourByteInt:
		v, _ := prop.value.(uint32)
		n2, err = w.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})

	case PropTypeVarInt:
		v, _ := prop.value.(uint32)
		n2, err = encodeVarint(w, v)

	case PropTypeString:
		s, _ := prop.value.(string)
		n2, err = encodeString(w, s)

	case PropTypeBinary:
		b, _ := prop.value.([]byte)
		n2, err = encodeBinary(w, b)

	case PropTypeStringPair:
		sp, _ := prop.value.(StringPair)
		n2, err = encodeStringPair(w, sp)
	}

	return n + n2, err
}

func (p *Properties) size() int {
	if p == nil {
		return 0
	}

	size := 0
	for i := range p.props {
		prop := &p.props[i]
		size++ // property ID

		propType := prop.id.PropertyType()
		switch propType {
		case PropTypeByte:
			size++
		case PropTypeTwoByteInt:
			size += 2
		case PropTypeFourByteInt:
			size += 4
		case PropTypeVarInt:
			v, _ := prop.value.(uint32)
			size += varintSize(v)
		case PropTypeString:
			s, _ := prop.value.(string)
			size += 2 + len(s)
		case PropTypeBinary:
			b, _ := prop.value.([]byte)
			size += 2 + len(b)
		case PropTypeStringPair:
			sp, _ := prop.value.(StringPair)
			size += 2 + len(sp.Key) + 2 + len(sp.Value)
		}
	}
	return size
}

// propertyReadError maps the EOF family returned by a reader clipped to
// the declared property-list length into ErrPropertyLengthMismatch: the
// list claimed more bytes than it actually contains.
func propertyReadError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrPropertyLengthMismatch
	}
	return err
}

// decodePropertyValue reads one property's value, dispatched on its wire
// type, from r.
func decodePropertyValue(r io.Reader, propType PropertyType) (any, int, error) {
	switch propType {
	case PropTypeByte:
		var buf [1]byte
		n, err := io.ReadFull(r, buf[:])
		return buf[0], n, err

	case PropTypeTwoByteInt:
		var buf [2]byte
		n, err := io.ReadFull(r, buf[:])
		return uint16(buf[0])<<8 | uint16(buf[1]), n, err

	case PropTypeFourByteInt:
		var buf [4]byte
		n, err := io.ReadFull(r, buf[:])
		return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), n, err

	case PropTypeVarInt:
		v, n, err := decodeVarint(r)
		return v, n, err

	case PropTypeString:
		s, n, err := decodeString(r)
		return s, n, err

	case PropTypeBinary:
		b, n, err := decodeBinary(r)
		return b, n, err

	case PropTypeStringPair:
		sp, n, err := decodeStringPair(r)
		return sp, n, err

	default:
		return nil, 0, ErrInvalidPropertyType
	}
}

// Decode reads properties from the reader.
// Returns the number of bytes read.
//
// The property list's own length prefix bounds every read through an
// io.LimitedReader: a property that would read past the declared length
// surfaces as ErrPropertyLengthMismatch instead of silently consuming
// bytes that belong to whatever follows the property list in the frame.
func (p *Properties) Decode(r io.Reader) (int, error) {
	length, n, err := decodeVarint(r)
	if err != nil {
		return n, err
	}

	if length == 0 {
		return n, nil
	}

	lr := &io.LimitedReader{R: r, N: int64(length)}
	for lr.N > 0 {
		var idBuf [1]byte
		n2, err := io.ReadFull(lr, idBuf[:])
		n += n2
		if err != nil {
			return n, propertyReadError(err)
		}

		id := PropertyID(idBuf[0])
		propType, ok := lookupPropertyType(id)
		if !ok {
			return n, ErrUnknownPropertyID
		}

		value, n3, err := decodePropertyValue(lr, propType)
		n += n3
		if err != nil {
			return n, propertyReadError(err)
		}

		p.props = append(p.props, property{id: id, value: value})
	}

	return n, nil
}

// StringPairView is a StringPair decoded without copying, with each half
// aliasing the source buffer exactly as StringView does.
type StringPairView struct {
	Key   StringView
	Value StringView
}

// PropertyView is a single decoded property whose string and binary
// fields, if any, alias the buffer ViewProperties was built from rather
// than being copied. Only the field matching Type holds meaningful data.
type PropertyView struct {
	ID   PropertyID
	Type PropertyType

	byteVal byte
	u16Val  uint16
	u32Val  uint32
	strVal  StringView
	binVal  BinaryView
	pairVal StringPairView
}

// Byte returns the property's value as a byte. Meaningful only when
// Type == PropTypeByte.
func (v PropertyView) Byte() byte { return v.byteVal }

// Uint16 returns the property's value as a uint16. Meaningful only when
// Type == PropTypeTwoByteInt.
func (v PropertyView) Uint16() uint16 { return v.u16Val }

// Uint32 returns the property's value as a uint32. Meaningful for both
// PropTypeFourByteInt and PropTypeVarInt.
func (v PropertyView) Uint32() uint32 { return v.u32Val }

// String returns the property's string value. Meaningful only when
// Type == PropTypeString.
func (v PropertyView) String() StringView { return v.strVal }

// Binary returns the property's binary value. Meaningful only when
// Type == PropTypeBinary.
func (v PropertyView) Binary() BinaryView { return v.binVal }

// Pair returns the property's string-pair value. Meaningful only when
// Type == PropTypeStringPair.
func (v PropertyView) Pair() StringPairView { return v.pairVal }

// ViewProperties is a lazy, zero-copy cursor over an encoded property
// list: it decodes one PropertyView at a time from Next, never
// allocating and never materializing a full Properties collection.
// Suitable for callers that only need a handful of properties out of a
// packet and want to avoid the owning Properties.Decode allocation
// entirely.
type ViewProperties struct {
	buf []byte
}

// DecodeViewProperties reads the property-list length prefix from the
// front of buf and returns a cursor over the property entries it bounds,
// plus the total number of bytes occupied by the length prefix and the
// list itself.
func DecodeViewProperties(buf []byte) (ViewProperties, int, error) {
	length, n, err := decodeVarintView(buf)
	if err != nil {
		return ViewProperties{}, 0, err
	}

	total := n + int(length)
	if len(buf) < total {
		return ViewProperties{}, 0, ErrShortBuffer
	}

	return ViewProperties{buf: buf[n:total]}, total, nil
}

// Next decodes the next property under the cursor. The second return
// value is false once the list is exhausted; a non-nil error means the
// remaining bytes do not form a complete, valid property, which for a
// correctly length-prefixed list should not happen short of a malformed
// frame.
func (vp *ViewProperties) Next() (PropertyView, bool, error) {
	if len(vp.buf) == 0 {
		return PropertyView{}, false, nil
	}

	id := PropertyID(vp.buf[0])
	propType, ok := lookupPropertyType(id)
	if !ok {
		return PropertyView{}, false, ErrUnknownPropertyID
	}

	rest := vp.buf[1:]
	pv := PropertyView{ID: id, Type: propType}

	var n int
	var err error
	switch propType {
	case PropTypeByte:
		if len(rest) < 1 {
			return PropertyView{}, false, ErrShortBuffer
		}
		pv.byteVal = rest[0]
		n = 1

	case PropTypeTwoByteInt:
		if len(rest) < 2 {
			return PropertyView{}, false, ErrShortBuffer
		}
		pv.u16Val = uint16(rest[0])<<8 | uint16(rest[1])
		n = 2

	case PropTypeFourByteInt:
		if len(rest) < 4 {
			return PropertyView{}, false, ErrShortBuffer
		}
		pv.u32Val = uint32(rest[0])<<24 | uint32(rest[1])<<16 | uint32(rest[2])<<8 | uint32(rest[3])
		n = 4

	case PropTypeVarInt:
		pv.u32Val, n, err = decodeVarintView(rest)

	case PropTypeString:
		pv.strVal, n, err = decodeStringView(rest)

	case PropTypeBinary:
		pv.binVal, n, err = decodeBinaryView(rest)

	case PropTypeStringPair:
		var n2 int
		pv.pairVal.Key, n, err = decodeStringView(rest)
		if err == nil {
			pv.pairVal.Value, n2, err = decodeStringView(rest[n:])
			n += n2
		}
	}

	if err != nil {
		return PropertyView{}, false, err
	}

	vp.buf = rest[n:]
	return pv, true, nil
}
