package enums

import "fmt"

// SignatureSlot identifies one of the two capture points on a ticket.
type SignatureSlot string

const (
	SignatureSlotStart      SignatureSlot = "start"
	SignatureSlotCompletion SignatureSlot = "completion"
)

var validSignatureSlots = []SignatureSlot{
	SignatureSlotStart,
	SignatureSlotCompletion,
}

// String implements fmt.Stringer.
func (s SignatureSlot) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SignatureSlot.
func (s SignatureSlot) IsValid() bool {
	for _, candidate := range validSignatureSlots {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSignatureSlot converts raw input into a SignatureSlot. Empty input
// defaults to the completion slot.
func ParseSignatureSlot(value string) (SignatureSlot, error) {
	if value == "" {
		return SignatureSlotCompletion, nil
	}
	for _, candidate := range validSignatureSlots {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid signature slot %q", value)
}
