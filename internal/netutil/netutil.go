// package netutil converts between textual network addresses and the
// fixed-width representations the radio HAL consumes.
package netutil

import (
	"encoding/hex"
	"errors"
	"net/netip"
	"strconv"
	"strings"
)

var (
	errBadBSSID = errors.New("netutil: malformed BSSID")
	errNotIPv4  = errors.New("netutil: address is not IPv4")
)

// ParseBSSID parses a MAC address written as six colon-separated
// hexadecimal octets, e.g. "AA:BB:CC:DD:EE:FF".
func ParseBSSID(s string) (mac [6]byte, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return mac, errBadBSSID
	}
	for i, p := range parts {
		if len(p) != 2 {
			return [6]byte{}, errBadBSSID
		}
		b, err := hex.DecodeString(p)
		if err != nil {
			return [6]byte{}, errBadBSSID
		}
		mac[i] = b[0]
	}
	return mac, nil
}

// AddrToU32 packs an IPv4 address into the vendor's 32-bit form with the
// first textual octet in the most significant byte.
func AddrToU32(addr netip.Addr) (uint32, error) {
	if !addr.Is4() {
		return 0, errNotIPv4
	}
	a4 := addr.As4()
	return uint32(a4[0])<<24 | uint32(a4[1])<<16 | uint32(a4[2])<<8 | uint32(a4[3]), nil
}

// U32ToAddr is the inverse of AddrToU32.
func U32ToAddr(u uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)})
}

// FormatU32 renders a vendor 32-bit IPv4 value as a dotted quad.
func FormatU32(u uint32) string {
	var sb strings.Builder
	for shift := 24; shift >= 0; shift -= 8 {
		if shift != 24 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(int(u >> shift & 0xff)))
	}
	return sb.String()
}
