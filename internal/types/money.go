// README: Common money value object used across modules.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in integer cents. Keeping cents avoids float drift in
// fee arithmetic; two-decimal strings appear only at the JSON boundary.
type Money int64

// ParseMoney parses a decimal string like "100.00" (at most 2 fraction digits)
// into cents.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		return 0, fmt.Errorf("money: negative amount %q", s)
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	switch len(frac) {
	case 0:
		return Money(w * 100), nil
	case 1:
		frac += "0"
	case 2:
	default:
		return 0, fmt.Errorf("money: more than 2 decimal places in %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	return Money(w*100 + f), nil
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
}

// SplitFee returns the platform fee (pct percent of m, rounded half-up to the
// cent) and the net remainder. fee + net == m always holds exactly.
func (m Money) SplitFee(pct int) (fee, net Money) {
	fee = Money((int64(m)*int64(pct) + 50) / 100)
	return fee, m - fee
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
