// Package ckstar holds the command-line and plotting helpers shared by the
// charged K* commands.
package ckstar

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatArrayFlags is a repeatable flag collecting floats. Each occurrence may
// carry a comma-separated list. The first occurrence replaces the default.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	var values []float64
	for _, field := range strings.Split(valueStr, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("invalid float %q: %w", field, err)
		}
		values = append(values, value)
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	f.Array = append(f.Array, values...)
	return nil
}

func (f *FloatArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

func (f *FloatArrayFlags) Type() string { return "floats" }

// Changed reports whether the flag was given on the command line.
func (f *FloatArrayFlags) Changed() bool { return f.beenSet }
