package domain

// Result is the output contract handed to the presentation layer and the
// export adapter. Weights are rounded to 2 decimals.
type Result struct {
	Mode          Mode        `json:"-" yaml:"-"`
	ModeName      string      `json:"mode" yaml:"mode"`
	FlourWeight   float64     `json:"flourWeight" yaml:"flourWeight"`
	NumberOfBalls string      `json:"numberOfBalls,omitempty" yaml:"numberOfBalls,omitempty"`
	WeightPerBall string      `json:"weightPerBall,omitempty" yaml:"weightPerBall,omitempty"`
	Ingredients   []ResultRow `json:"ingredients" yaml:"ingredients"`
	TotalWeight   float64     `json:"totalWeight" yaml:"totalWeight"`
}

// ResultRow is a single ingredient line of a Result.
type ResultRow struct {
	Name       string  `json:"name" yaml:"name"`
	Percentage string  `json:"percentage" yaml:"percentage"`
	Weight     float64 `json:"weight" yaml:"weight"`
	PreFerment bool    `json:"preFerment,omitempty" yaml:"preFerment,omitempty"`
}
