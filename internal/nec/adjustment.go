package nec

// AmbientBaseC is the ambient temperature Table 310.16 is based on.
const AmbientBaseC = 30.0

// Table 310.15(B)(1). A zero factor means the column may not be used at that ambient.
type ambientRow struct {
	maxC float64
	f60  float64
	f75  float64
	f90  float64
}

var ambientRows = []ambientRow{
	{10, 1.29, 1.20, 1.15},
	{15, 1.22, 1.15, 1.12},
	{20, 1.15, 1.11, 1.08},
	{25, 1.08, 1.05, 1.04},
	{30, 1.00, 1.00, 1.00},
	{35, 0.91, 0.94, 0.96},
	{40, 0.82, 0.88, 0.91},
	{45, 0.71, 0.82, 0.87},
	{50, 0.58, 0.75, 0.82},
	{55, 0.41, 0.67, 0.76},
	{60, 0, 0.58, 0.71},
	{65, 0, 0.47, 0.65},
	{70, 0, 0.33, 0.58},
	{75, 0, 0, 0.50},
	{80, 0, 0, 0.41},
	{85, 0, 0, 0.29},
}

// AmbientCorrection returns the Table 310.15(B)(1) factor for an ambient
// temperature in °C. The second return is false when the column has no
// factor at that temperature.
func AmbientCorrection(ambientC float64, r TempRating) (float64, bool) {
	for _, row := range ambientRows {
		if ambientC > row.maxC {
			continue
		}
		var f float64
		switch r {
		case Rated60:
			f = row.f60
		case Rated75:
			f = row.f75
		case Rated90:
			f = row.f90
		}
		return f, f > 0
	}
	return 0, false
}

// Table 310.15(C)(1).
type bundleRow struct {
	maxConductors int
	factor        float64
}

var bundleRows = []bundleRow{
	{3, 1.00},
	{6, 0.80},
	{9, 0.70},
	{20, 0.50},
	{30, 0.45},
	{40, 0.40},
}

const bundleFactorOver40 = 0.35

// BundleAdjustment returns the adjustment factor for a number of
// current-carrying conductors in a raceway or cable.
func BundleAdjustment(currentCarrying int) float64 {
	for _, row := range bundleRows {
		if currentCarrying <= row.maxConductors {
			return row.factor
		}
	}
	return bundleFactorOver40
}

// StandardBreakerRatings are the 240.6(A) standard ampere ratings.
var StandardBreakerRatings = []int{
	15, 20, 25, 30, 35, 40, 45, 50, 60, 70, 80, 90, 100, 110, 125, 150, 175, 200,
	225, 250, 300, 350, 400, 450, 500, 600, 700, 800, 1000, 1200, 1600, 2000,
	2500, 3000, 4000, 5000, 6000,
}

// NextStandardRating returns the smallest standard rating that is at least amps.
func NextStandardRating(amps float64) (int, bool) {
	for _, r := range StandardBreakerRatings {
		if float64(r) >= amps {
			return r, true
		}
	}
	return 0, false
}

// StandardServiceRatings are the common dwelling service sizes. 230.79(C)
// sets 100 A as the one-family dwelling minimum.
var StandardServiceRatings = []int{100, 125, 150, 175, 200, 225, 250, 300, 350, 400}

// ServiceConductorFactor is the 310.12 multiplier for dwelling services of
// 100 A through 400 A.
const ServiceConductorFactor = 0.83

// ContinuousLoadFactor is the 125% multiplier for continuous loads (210.19, 215.2).
const ContinuousLoadFactor = 1.25
