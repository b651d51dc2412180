package mxf

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// UL is a 16-byte SMPTE universal label naming a metadata-set type or a
// field semantic.
type UL [16]byte

// String renders the label in urn:smpte:ul form.
func (u UL) String() string {
	h := hex.EncodeToString(u[:])
	return fmt.Sprintf("urn:smpte:ul:%s.%s.%s.%s", h[0:8], h[8:16], h[16:24], h[24:32])
}

// UID is a 16-byte instance identifier, unique per metadata set within one
// parse session.
type UID [16]byte

// String renders the identifier as hex.
func (u UID) String() string {
	return "0x" + hex.EncodeToString(u[:])
}

// ulFrom copies the first 16 bytes of b into a UL. The caller guarantees
// len(b) >= 16.
func ulFrom(b []byte) UL {
	var u UL
	copy(u[:], b)
	return u
}

// uidFrom copies the first 16 bytes of b into a UID.
func uidFrom(b []byte) UID {
	var u UID
	copy(u[:], b)
	return u
}

// parseUL builds a UL from a dotted hex constant. It panics on malformed
// input; it is only used for package-level label definitions.
func parseUL(s string) UL {
	h := strings.ReplaceAll(s, ".", "")
	b, err := hex.DecodeString(h)
	if err != nil || len(b) != 16 {
		panic(fmt.Sprintf("bad universal label constant %q", s))
	}
	return ulFrom(b)
}
