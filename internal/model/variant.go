package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Variant is the container height policy of a problem.
// A free variant leaves the height unconstrained; a fixed variant rejects any
// placement reaching above Height.
type Variant struct {
	Fixed  bool
	Height int
}

// Free returns the unconstrained variant.
func Free() Variant { return Variant{} }

// FixedHeight returns a variant bounded at h.
func FixedHeight(h int) Variant { return Variant{Fixed: true, Height: h} }

// String renders the variant as it follows "container height:" in problem files.
func (v Variant) String() string {
	if v.Fixed {
		return fmt.Sprintf("fixed %d", v.Height)
	}
	return "free"
}

// ParseVariant accepts "free", "fixed <H>", or "fixed" (height resolved later).
func ParseVariant(s string) (Variant, error) {
	tokens := strings.Fields(strings.ToLower(s))
	switch {
	case len(tokens) == 1 && tokens[0] == "free":
		return Free(), nil
	case len(tokens) == 1 && tokens[0] == "fixed":
		return FixedHeight(0), nil
	case len(tokens) == 2 && tokens[0] == "fixed":
		h, err := strconv.Atoi(tokens[1])
		if err != nil || h <= 0 {
			return Variant{}, fmt.Errorf("invalid fixed height %q", tokens[1])
		}
		return FixedHeight(h), nil
	default:
		return Variant{}, fmt.Errorf("unknown variant %q (expected free or fixed <height>)", s)
	}
}

func (v Variant) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Variant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
