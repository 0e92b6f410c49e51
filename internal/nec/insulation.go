package nec

import (
	"fmt"
	"strings"
)

// Insulation is a conductor insulation type.
type Insulation string

const (
	TW    Insulation = "TW"
	THW   Insulation = "THW"
	THWN  Insulation = "THWN"
	THHN  Insulation = "THHN"
	THWN2 Insulation = "THWN-2"
	XHHW  Insulation = "XHHW"
)

var insulationRatings = map[Insulation]TempRating{
	TW:    Rated60,
	THW:   Rated75,
	THWN:  Rated75,
	THHN:  Rated90,
	THWN2: Rated90,
	XHHW:  Rated90,
}

// Insulations lists the supported insulation types.
func Insulations() []Insulation {
	return []Insulation{TW, THW, THWN, THHN, THWN2, XHHW}
}

// Rating returns the insulation's Table 310.16 column.
func (i Insulation) Rating() (TempRating, bool) {
	r, ok := insulationRatings[i]
	return r, ok
}

// ParseInsulation is case-insensitive and accepts "XHHW-2" as XHHW.
func ParseInsulation(s string) (Insulation, error) {
	v := Insulation(strings.ToUpper(strings.TrimSpace(s)))
	if v == "XHHW-2" {
		return XHHW, nil
	}
	if _, ok := insulationRatings[v]; !ok {
		return "", fmt.Errorf("unknown insulation type %q", s)
	}
	return v, nil
}

// Chapter 9 Table 5 area families.
type areaFamily int

const (
	familyTW areaFamily = iota
	familyTHW
	familyTHHN
	familyXHHW
)

var insulationFamilies = map[Insulation]areaFamily{
	TW:    familyTW,
	THW:   familyTHW,
	THWN:  familyTHHN,
	THHN:  familyTHHN,
	THWN2: familyTHHN,
	XHHW:  familyXHHW,
}

// Approximate conductor areas in square inches, Chapter 9 Table 5.
var conductorAreas = map[areaFamily]map[Size]float64{
	familyTHHN: {
		AWG14: 0.0097, AWG12: 0.0133, AWG10: 0.0211, AWG8: 0.0366,
		AWG6: 0.0507, AWG4: 0.0824, AWG3: 0.0973, AWG2: 0.1158, AWG1: 0.1562,
		AWG1_0: 0.1855, AWG2_0: 0.2223, AWG3_0: 0.2679, AWG4_0: 0.3237,
		KCMIL250: 0.3970, KCMIL300: 0.4608, KCMIL350: 0.5242, KCMIL400: 0.5863,
		KCMIL500: 0.7073, KCMIL600: 0.8676, KCMIL700: 0.9887, KCMIL750: 1.0496,
		KCMIL800: 1.1085, KCMIL900: 1.2311, KCMIL1000: 1.3478,
	},
	familyTHW: {
		AWG14: 0.0209, AWG12: 0.0260, AWG10: 0.0333, AWG8: 0.0556,
		AWG6: 0.0726, AWG4: 0.0973, AWG3: 0.1134, AWG2: 0.1333, AWG1: 0.1901,
		AWG1_0: 0.2223, AWG2_0: 0.2624, AWG3_0: 0.3117, AWG4_0: 0.3718,
		KCMIL250: 0.4596, KCMIL300: 0.5281, KCMIL350: 0.5958, KCMIL400: 0.6619,
		KCMIL500: 0.7901, KCMIL600: 0.9729, KCMIL700: 1.1010, KCMIL750: 1.1652,
		KCMIL800: 1.2272, KCMIL900: 1.3561, KCMIL1000: 1.4784,
	},
	familyXHHW: {
		AWG14: 0.0139, AWG12: 0.0181, AWG10: 0.0243, AWG8: 0.0437,
		AWG6: 0.0590, AWG4: 0.0814, AWG3: 0.0962, AWG2: 0.1146, AWG1: 0.1534,
		AWG1_0: 0.1825, AWG2_0: 0.2190, AWG3_0: 0.2642, AWG4_0: 0.3197,
		KCMIL250: 0.3904, KCMIL300: 0.4536, KCMIL350: 0.5166, KCMIL400: 0.5782,
		KCMIL500: 0.6984, KCMIL600: 0.8709, KCMIL700: 0.9923, KCMIL750: 1.0532,
		KCMIL800: 1.1122, KCMIL900: 1.2351, KCMIL1000: 1.3519,
	},
}

func init() {
	// TW shares the THW row from 6 AWG up and only differs for the small sizes.
	tw := map[Size]float64{AWG14: 0.0139, AWG12: 0.0181, AWG10: 0.0243, AWG8: 0.0437}
	for size, area := range conductorAreas[familyTHW] {
		if size >= AWG6 {
			tw[size] = area
		}
	}
	conductorAreas[familyTW] = tw
}

// ConductorArea returns the Table 5 area of one insulated conductor.
func ConductorArea(size Size, ins Insulation) (float64, bool) {
	family, ok := insulationFamilies[ins]
	if !ok {
		return 0, false
	}
	area, ok := conductorAreas[family][size]
	return area, ok
}
