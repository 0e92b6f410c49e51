package nec

import (
	"fmt"
	"strings"
)

// Size is a standardized conductor size. The zero value means "unset"; the
// remaining values are ordered from smallest (14 AWG) to largest (1000 kcmil).
type Size int

const (
	SizeUnknown Size = iota
	AWG14
	AWG12
	AWG10
	AWG8
	AWG6
	AWG4
	AWG3
	AWG2
	AWG1
	AWG1_0
	AWG2_0
	AWG3_0
	AWG4_0
	KCMIL250
	KCMIL300
	KCMIL350
	KCMIL400
	KCMIL500
	KCMIL600
	KCMIL700
	KCMIL750
	KCMIL800
	KCMIL900
	KCMIL1000
)

var sizeLabels = [...]string{
	SizeUnknown: "",
	AWG14:       "14",
	AWG12:       "12",
	AWG10:       "10",
	AWG8:        "8",
	AWG6:        "6",
	AWG4:        "4",
	AWG3:        "3",
	AWG2:        "2",
	AWG1:        "1",
	AWG1_0:      "1/0",
	AWG2_0:      "2/0",
	AWG3_0:      "3/0",
	AWG4_0:      "4/0",
	KCMIL250:    "250",
	KCMIL300:    "300",
	KCMIL350:    "350",
	KCMIL400:    "400",
	KCMIL500:    "500",
	KCMIL600:    "600",
	KCMIL700:    "700",
	KCMIL750:    "750",
	KCMIL800:    "800",
	KCMIL900:    "900",
	KCMIL1000:   "1000",
}

// Sizes returns every standardized size, smallest first.
func Sizes() []Size {
	out := make([]Size, 0, int(KCMIL1000))
	for s := AWG14; s <= KCMIL1000; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is a standardized size.
func (s Size) Valid() bool { return s >= AWG14 && s <= KCMIL1000 }

// IsKcmil reports whether the size is expressed in thousands of circular mils.
func (s Size) IsKcmil() bool { return s >= KCMIL250 && s <= KCMIL1000 }

// Label is the bare table label ("12", "1/0", "250").
func (s Size) Label() string {
	if !s.Valid() {
		return ""
	}
	return sizeLabels[s]
}

func (s Size) String() string {
	switch {
	case !s.Valid():
		return "unknown"
	case s.IsKcmil():
		return sizeLabels[s] + " kcmil"
	default:
		return sizeLabels[s] + " AWG"
	}
}

// Next returns the next larger size and false when s is already the largest.
func (s Size) Next() (Size, bool) {
	if !s.Valid() || s == KCMIL1000 {
		return SizeUnknown, false
	}
	return s + 1, true
}

// Prev returns the next smaller size and false when s is already the smallest.
func (s Size) Prev() (Size, bool) {
	if !s.Valid() || s == AWG14 {
		return SizeUnknown, false
	}
	return s - 1, true
}

// ParseSize accepts table labels with optional unit suffixes: "12", "12 AWG",
// "#12", "1/0", "0", "00", "250 kcmil", "250MCM".
func ParseSize(raw string) (Size, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "#")
	for _, suffix := range []string{"kcmil", "mcm", "awg"} {
		s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
	}

	switch s {
	case "0":
		return AWG1_0, nil
	case "00":
		return AWG2_0, nil
	case "000":
		return AWG3_0, nil
	case "0000":
		return AWG4_0, nil
	}

	if s != "" {
		for size := AWG14; size <= KCMIL1000; size++ {
			if sizeLabels[size] == s {
				return size, nil
			}
		}
	}
	return SizeUnknown, fmt.Errorf("unknown conductor size %q", raw)
}

// MarshalText encodes the bare table label.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.Label()), nil
}

// UnmarshalText accepts anything ParseSize does; an empty value leaves the size unset.
func (s *Size) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*s = SizeUnknown
		return nil
	}
	parsed, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
