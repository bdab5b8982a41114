package wire

import (
	"fmt"
	"net/netip"
)

// Address family tags of an encoded endpoint.
const (
	FamilyIPv4 byte = 4
	FamilyIPv6 byte = 6
)

type endpoint struct{}

// Endpoint is the Type of a network endpoint. The encoding is a family tag,
// the address (4 bytes for IPv4, 16 for IPv6) and a big-endian port:
//
//	[4][a b c d][port hi][port lo]         7 bytes
//	[6][16 address bytes][port hi][port lo] 19 bytes
//
// IPv4-mapped IPv6 addresses stay IPv6. Zoned addresses cannot be encoded.
var Endpoint Type[netip.AddrPort] = endpoint{}

func (endpoint) Name() string   { return "endpoint" }
func (endpoint) Terminal() bool { return false }

func (endpoint) Size(v *netip.AddrPort) int {
	if v.Addr().Is4() {
		return 1 + 4 + 2
	}
	return 1 + 16 + 2
}

func (endpoint) Encode(w *Writer, v *netip.AddrPort) error {
	addr := v.Addr()
	switch {
	case !addr.IsValid():
		return fmt.Errorf("%w: zero address", ErrInvalidEndpoint)
	case addr.Zone() != "":
		return fmt.Errorf("%w: zoned address %s", ErrInvalidEndpoint, addr)
	case addr.Is4():
		ip := addr.As4()
		w.WriteUint8(FamilyIPv4)
		w.WriteBytes(ip[:])
	default:
		ip := addr.As16()
		w.WriteUint8(FamilyIPv6)
		w.WriteBytes(ip[:])
	}
	w.WriteUint16(v.Port())
	return w.Err()
}

func (endpoint) Decode(r *Reader, b Budget, v *netip.AddrPort) (Budget, error) {
	b = r.Take(b, 1)
	family, err := r.ReadByte()
	if err != nil {
		return b, err
	}

	var addr netip.Addr
	switch family {
	case FamilyIPv4:
		b = r.Take(b, 4)
		var ip [4]byte
		r.ReadBytesTo(ip[:])
		addr = netip.AddrFrom4(ip)
	case FamilyIPv6:
		b = r.Take(b, 16)
		var ip [16]byte
		r.ReadBytesTo(ip[:])
		addr = netip.AddrFrom16(ip)
	default:
		return b, fmt.Errorf("%w: unknown address family %d", ErrInvalidEncoding, family)
	}

	b = r.Take(b, 2)
	var port uint16
	r.ReadUint16(&port)
	if err := r.Err(); err != nil {
		return b, err
	}
	*v = netip.AddrPortFrom(addr, port)
	return b, nil
}
