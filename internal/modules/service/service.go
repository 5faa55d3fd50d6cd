// README: Closed service-code enum; unknown codes are rejected at the boundary.
package service

import (
	"fmt"
	"strings"
)

type Code string

const (
	Foot      Code = "foot"
	Thai      Code = "thai"
	Oil       Code = "oil"
	Aroma     Code = "aroma"
	FourHands Code = "4_hands_oil"
	Pedicure  Code = "pedicure"
	Nails     Code = "nails"
	Hair      Code = "hair"
)

var labels = map[Code]string{
	Foot:      "Foot Massage",
	Thai:      "Thai Massage",
	Oil:       "Oil Massage",
	Aroma:     "Aroma Therapy",
	FourHands: "4 Hands Oil Massage",
	Pedicure:  "Pedicure/Manicure",
	Nails:     "Nails",
	Hair:      "Hair Fan",
}

// All returns every offered service code.
func All() []Code {
	return []Code{Foot, Thai, Oil, Aroma, FourHands, Pedicure, Nails, Hair}
}

func (c Code) Valid() bool {
	_, ok := labels[c]
	return ok
}

func (c Code) Label() string {
	return labels[c]
}

func Parse(s string) (Code, error) {
	c := Code(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown service code %q", s)
	}
	return c, nil
}

// ParseList parses a comma-separated list of codes. Empty entries are
// dropped; an entirely empty list is an error because a request with no
// services matches nothing meaningful.
func ParseList(s string) ([]Code, error) {
	var out []Code
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no service codes given")
	}
	return out, nil
}

// ParseCodes parses a slice of code strings, as carried on the wire.
func ParseCodes(values []string) ([]Code, error) {
	var out []Code
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		c, err := Parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no service codes given")
	}
	return out, nil
}

// Intersects reports whether the two code sets share at least one member.
// Matching is exact set membership, not substring: "oil" must not match
// "4_hands_oil".
func Intersects(offered, requested []Code) bool {
	if len(offered) == 0 || len(requested) == 0 {
		return false
	}
	set := make(map[Code]struct{}, len(offered))
	for _, c := range offered {
		set[c] = struct{}{}
	}
	for _, c := range requested {
		if _, ok := set[c]; ok {
			return true
		}
	}
	return false
}

// Strings converts codes to their wire form.
func Strings(codes []Code) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}
