// Package pricing implements the quote line-item pricing engine: product
// resolution over the catalog, department-specific dimension clamping, surface
// area and ratio computation, and amount aggregation. All functions are pure
// over their inputs; catalogs are passed in explicitly and never mutated.
package pricing

import "strconv"

// Default dimension bounds in millimetres. Departments named in the policy get
// the relaxed minimum or the widened maximum.
const (
	DefaultMinDimension = 300
	RelaxedMinDimension = 1
	DefaultMaxDimension = 900
	WidenedMaxDimension = 1000
)

// Bounds is the inclusive range height and depth are clamped into. Width is
// never clamped; it stays fixed at the catalog reference width.
type Bounds struct {
	Min float64
	Max float64
}

// Clamp forces v into the bounds.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// ClampInput parses a raw user-entered dimension and clamps it. Non-numeric
// input falls back to the department minimum.
func (b Bounds) ClampInput(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = b.Min
	}
	return b.Clamp(v)
}

// BoundsPolicy maps department codes to their clamping bounds. The special
// codes come from business configuration, not from the department catalog.
type BoundsPolicy struct {
	relaxedMin map[string]bool
	widenedMax map[string]bool
}

// NewBoundsPolicy builds a policy from the configured special department codes.
func NewBoundsPolicy(relaxedMinCodes []string, widenedMaxCodes ...string) BoundsPolicy {
	p := BoundsPolicy{
		relaxedMin: make(map[string]bool, len(relaxedMinCodes)),
		widenedMax: make(map[string]bool, len(widenedMaxCodes)),
	}
	for _, code := range relaxedMinCodes {
		if code != "" {
			p.relaxedMin[code] = true
		}
	}
	for _, code := range widenedMaxCodes {
		if code != "" {
			p.widenedMax[code] = true
		}
	}
	return p
}

// DefaultBoundsPolicy returns the business defaults: TN, MC and TL clamp from
// 1 instead of 300, and TL clamps up to 1000 instead of 900.
func DefaultBoundsPolicy() BoundsPolicy {
	return NewBoundsPolicy([]string{"TN", "MC", "TL"}, "TL")
}

// For returns the bounds for a department code.
func (p BoundsPolicy) For(departmentCode string) Bounds {
	b := Bounds{Min: DefaultMinDimension, Max: DefaultMaxDimension}
	if p.relaxedMin[departmentCode] {
		b.Min = RelaxedMinDimension
	}
	if p.widenedMax[departmentCode] {
		b.Max = WidenedMaxDimension
	}
	return b
}
