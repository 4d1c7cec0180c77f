package solver

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Options configures a solver. The zero value is not usable; start
// from DefaultOptions. Options are threaded explicitly through
// construction: there is no process-wide solver state.
type Options struct {
	// VarDecay is the VSIDS decay factor, in (0,1). The activity
	// increment is divided by it after each conflict.
	VarDecay float64 `mapstructure:"var_decay"`
	// MOMFraction is the share of the variable count during which the
	// MOM heuristic drives branching before VSIDS takes over.
	MOMFraction float64 `mapstructure:"mom_fraction"`
	// Verbose makes the solver log search statistics.
	Verbose bool `mapstructure:"verbose"`
}

// DefaultOptions returns the standard solver configuration.
func DefaultOptions() Options {
	return Options{
		VarDecay:    0.95,
		MOMFraction: 0.25,
	}
}

func (o Options) validate() error {
	if o.VarDecay <= 0 || o.VarDecay >= 1 {
		return errors.Errorf("var_decay must be in (0,1), got %g", o.VarDecay)
	}
	if o.MOMFraction < 0 || o.MOMFraction > 1 {
		return errors.Errorf("mom_fraction must be in [0,1], got %g", o.MOMFraction)
	}
	return nil
}

// DecodeOptions builds Options from a loosely-typed map, e.g. one
// unmarshaled from a JSON configuration file. Unknown keys are
// rejected. Missing keys keep their default value.
func DecodeOptions(raw map[string]interface{}) (Options, error) {
	opts := DefaultOptions()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(raw); err != nil {
		return opts, errors.Wrap(err, "invalid solver options")
	}
	if err := opts.validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
