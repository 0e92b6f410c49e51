package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/calc"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
)

var ErrNotFound = errors.New("calculation not found")

// Kind names a calculator. It is used in URLs and MQTT topics.
type Kind string

const (
	KindCurrent       Kind = "current"
	KindWireSize      Kind = "wire-size"
	KindVoltageDrop   Kind = "voltage-drop"
	KindConduitFill   Kind = "conduit-fill"
	KindDemandLoad    Kind = "demand-load"
	KindBranchCircuit Kind = "branch-circuit"
	KindDryer         Kind = "dryer"
	KindRange         Kind = "range"
	KindEVCharger     Kind = "ev-charger"
	KindHotTub        Kind = "hot-tub"
	KindWaterHeater   Kind = "water-heater"
	KindServiceLoad   Kind = "service-load"
)

type CurrentRequest struct {
	LoadWatts   float64 `json:"load_watts"`
	Voltage     float64 `json:"voltage"`
	Phases      int     `json:"phases,omitempty"`
	PowerFactor float64 `json:"power_factor,omitempty"`
}

type WireSizeRequest struct {
	Amps            float64        `json:"amps"`
	Material        nec.Material   `json:"material,omitempty"`
	Insulation      nec.Insulation `json:"insulation,omitempty"`
	TempRating      nec.TempRating `json:"temp_rating,omitempty"`
	AmbientC        *float64       `json:"ambient_c,omitempty"`
	CurrentCarrying int            `json:"current_carrying,omitempty"`
	Continuous      bool           `json:"continuous,omitempty"`
}

type VoltageDropRequest struct {
	Amps         float64      `json:"amps"`
	DistanceFeet float64      `json:"distance_feet"`
	Size         nec.Size     `json:"size"`
	Material     nec.Material `json:"material,omitempty"`
	Voltage      float64      `json:"voltage"`
	Phases       int          `json:"phases,omitempty"`
	LimitPercent float64      `json:"limit_percent,omitempty"`
	// Combined checks against the feeder plus branch limit instead of the branch limit.
	Combined bool `json:"combined,omitempty"`
}

type ConduitFillRequest struct {
	ConduitType nec.ConduitType `json:"conduit_type"`
	// TradeSize is optional; when empty the smallest compliant size is chosen.
	TradeSize  string                `json:"trade_size,omitempty"`
	Nipple     bool                  `json:"nipple,omitempty"`
	Conductors []calc.ConductorGroup `json:"conductors"`
}

type DemandLoadRequest struct {
	ConnectedWatts float64 `json:"connected_watts"`
	Rule           string  `json:"rule"`
}

// Appliance circuits and dwelling services take the engine's input records directly.
type (
	CircuitRequest     = calc.CircuitInput
	ServiceLoadRequest = calc.ServiceLoadInput
)

// CalculationResult is the shared output record. Calculators fill the fields
// that apply to them; Compliant is true when no checked limit was exceeded.
type CalculationResult struct {
	Amps               float64  `json:"amps,omitempty"`
	DesignAmps         float64  `json:"design_amps,omitempty"`
	WireSize           nec.Size `json:"wire_size,omitempty"`
	Ampacity           float64  `json:"ampacity,omitempty"`
	BreakerSize        int      `json:"breaker_size,omitempty"`
	VoltageDropVolts   float64  `json:"voltage_drop_volts,omitempty"`
	VoltageDropPercent float64  `json:"voltage_drop_percent,omitempty"`
	FillPercent        float64  `json:"fill_percent,omitempty"`
	MaxFillPercent     float64  `json:"max_fill_percent,omitempty"`
	ConduitTradeSize   string   `json:"conduit_trade_size,omitempty"`
	ConnectedWatts     float64  `json:"connected_watts,omitempty"`
	DemandWatts        float64  `json:"demand_watts,omitempty"`
	ServiceRating      int      `json:"service_rating,omitempty"`
	CopperConductor    nec.Size `json:"copper_conductor,omitempty"`
	AluminumConductor  nec.Size `json:"aluminum_conductor,omitempty"`
	Compliant          bool     `json:"compliant"`
	Notes              []string `json:"notes,omitempty"`
}

// Calculation is one evaluated request as kept in history.
type Calculation struct {
	ID        string            `json:"id"`
	Kind      Kind              `json:"kind"`
	Request   json.RawMessage   `json:"request"`
	Result    CalculationResult `json:"result"`
	Cached    bool              `json:"cached,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ListFilter narrows a history listing. Zero values mean "all kinds" and the
// store's default page size.
type ListFilter struct {
	Kind   Kind
	Limit  int
	Offset int
}
