package calc

import "math"

// ComputeCurrent returns line current for a load. Single phase uses
// I = P / (V × PF); three phase uses I = P / (V × √3 × PF) with V line-to-line.
func ComputeCurrent(loadWatts, voltage float64, phases int, powerFactor float64) (float64, error) {
	if math.IsNaN(loadWatts) || loadWatts < 0 {
		return 0, invalid("load_watts", "must be zero or positive, got %v", loadWatts)
	}
	if math.IsNaN(voltage) || voltage <= 0 {
		return 0, invalid("voltage", "must be positive, got %v", voltage)
	}
	if math.IsNaN(powerFactor) || powerFactor <= 0 || powerFactor > 1 {
		return 0, invalid("power_factor", "must be in (0, 1], got %v", powerFactor)
	}

	switch phases {
	case 1:
		return loadWatts / (voltage * powerFactor), nil
	case 3:
		return loadWatts / (voltage * math.Sqrt(3) * powerFactor), nil
	}
	return 0, invalid("phases", "must be 1 or 3, got %d", phases)
}

// phaseMultiplier is the conductor-length factor of the voltage-drop formula.
func phaseMultiplier(phases int) (float64, error) {
	switch phases {
	case 1:
		return 2, nil
	case 3:
		return math.Sqrt(3), nil
	}
	return 0, invalid("phases", "must be 1 or 3, got %d", phases)
}
