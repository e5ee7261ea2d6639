package chain

import (
	"bytes"
	"fmt"
)

// errorSelector is the 4-byte selector of the standard Error(string) revert.
var errorSelector = []byte{0x08, 0xc3, 0x79, 0xa0}

// RevertError reports an on-chain business-rule rejection. Reason holds the
// decoded Error(string) text when the payload followed the standard layout;
// otherwise Reason is empty and Raw carries the undecoded payload.
type RevertError struct {
	Reason string
	Raw    []byte
}

func (e *RevertError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("call reverted: %s", e.Reason)
	}
	return fmt.Sprintf("call reverted: 0x%x", e.Raw)
}

// DecodeRevertReason extracts the UTF-8 reason from an ABI-encoded
// Error(string) payload: selector, a 32-byte offset word, a 32-byte length
// word, then the string bytes. It never panics; any malformed layout yields
// ok=false so the caller can fall back to the raw payload.
func DecodeRevertReason(data []byte) (reason string, ok bool) {
	if len(data) < 4+32+32 || !bytes.Equal(data[:4], errorSelector) {
		return "", false
	}
	args := data[4:]
	size := uint64(len(args))

	// Bounds are checked by subtraction from the payload size, never by
	// adding to attacker-controlled words: a sum could wrap around uint64
	// and slip past the guard.
	offset, ok := wordToLen(args[:32])
	if !ok || offset > size || size-offset < 32 {
		return "", false
	}

	strLen, ok := wordToLen(args[offset : offset+32])
	if !ok || strLen > size-offset-32 {
		return "", false
	}

	return string(args[offset+32 : offset+32+strLen]), true
}

// wordToLen interprets a 32-byte big-endian word as a length. Words that do
// not fit in a uint64 are rejected.
func wordToLen(word []byte) (uint64, bool) {
	for _, b := range word[:24] {
		if b != 0 {
			return 0, false
		}
	}
	var n uint64
	for _, b := range word[24:] {
		n = n<<8 | uint64(b)
	}
	return n, true
}
