package aco

import (
	"fmt"
	"math"
)

// Default parameter values used by DefaultOptions.
const (
	DefaultAlpha            = 1.0
	DefaultBeta             = 2.0
	DefaultEvaporationRate  = 0.1
	DefaultNumAnts          = 50
	DefaultInitialPheromone = 1.0
	DefaultWorkers          = 1
)

// Options holds every tunable of an Engine.
//
// Seed==0 selects the deterministic default stream; any other value is used
// verbatim. Workers<=1 runs ants sequentially. A nil DepositPolicy means
// EdgeGradeDeposit.
type Options struct {
	Alpha            float64       `json:"alpha"`
	Beta             float64       `json:"beta"`
	EvaporationRate  float64       `json:"evaporation_rate"`
	NumAnts          int           `json:"ants"`
	InitialPheromone float64       `json:"initial_pheromone"`
	Seed             int64         `json:"seed"`
	Workers          int           `json:"workers"`
	DepositPolicy    DepositPolicy `json:"-"`
}

// DefaultOptions returns alpha 1, beta 2, evaporation 0.1, 50 ants, initial
// pheromone 1, seed 0 and one worker.
func DefaultOptions() Options {
	return Options{
		Alpha:            DefaultAlpha,
		Beta:             DefaultBeta,
		EvaporationRate:  DefaultEvaporationRate,
		NumAnts:          DefaultNumAnts,
		InitialPheromone: DefaultInitialPheromone,
		Workers:          DefaultWorkers,
	}
}

// Validate reports the first invalid field.
//
// Errors: ErrInvalidExponent, ErrInvalidEvaporation, ErrInvalidAntCount,
// ErrInvalidPheromone, ErrInvalidWorkers.
func (o Options) Validate() error {
	if err := validateExponent("alpha", o.Alpha); err != nil {
		return err
	}
	if err := validateExponent("beta", o.Beta); err != nil {
		return err
	}
	if err := validateEvaporation(o.EvaporationRate); err != nil {
		return err
	}
	if o.NumAnts <= 0 {
		return fmt.Errorf("%d: %w", o.NumAnts, ErrInvalidAntCount)
	}
	if err := validateAmount(o.InitialPheromone); err != nil {
		return fmt.Errorf("initial pheromone: %w", err)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%d: %w", o.Workers, ErrInvalidWorkers)
	}

	return nil
}

func validateExponent(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s=%v: %w", name, v, ErrInvalidExponent)
	}

	return nil
}
