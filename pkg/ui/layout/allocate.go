// Package layout distributes a one-dimensional extent among items with
// minimum, maximum and weight constraints.
package layout

import (
	"math"

	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
)

// Unbounded marks a constraint without maximum.
const Unbounded = -1

// Constraint bounds one item along the main axis. Weight only matters for
// space beyond the minimums.
type Constraint struct {
	Min    int
	Max    int
	Weight float64
}

// Flexible returns a constraint with no maximum.
func Flexible(min int, weight float64) Constraint {
	return Constraint{Min: min, Max: Unbounded, Weight: weight}
}

// Fixed returns a constraint that takes exactly size cells.
func Fixed(size int) Constraint {
	return Constraint{Min: size, Max: size}
}

// Bounded reports whether c has a maximum.
func (c Constraint) Bounded() bool {
	return c.Max != Unbounded
}

func (c Constraint) clamp(size int) (int, bool) {
	if c.Bounded() && size > c.Max {
		return c.Max, true
	}
	return size, false
}

// Allocate returns one size per item. Sizes sum to available minus the
// spacing between items.
//
// Every item starts at its minimum. The remaining space is split by weight
// and capped at each maximum; space lost to capping is split again among
// the uncapped items. Whatever integer rounding leaves over goes to the
// last item, which may then exceed its maximum.
//
// It fails with ErrCodeLayoutConstraint if the minimums and spacing do not
// fit or any input is negative.
func Allocate(items []Constraint, available, spacing int) ([]int, error) {
	if available < 0 || spacing < 0 {
		return nil, apperrors.New(apperrors.ErrCodeLayoutConstraint, "negative extent").
			WithContext("available", available).
			WithContext("spacing", spacing)
	}
	n := len(items)
	if n == 0 {
		return []int{}, nil
	}

	sumMin := 0
	totalWeight := 0.0
	for i, it := range items {
		if err := validate(i, it); err != nil {
			return nil, err
		}
		sumMin += it.Min
		totalWeight += it.Weight
	}

	gaps := spacing * (n - 1)
	content := available - gaps
	if sumMin > content {
		return nil, apperrors.New(apperrors.ErrCodeLayoutConstraint, "insufficient space").
			WithContext("required", sumMin+gaps).
			WithContext("available", available)
	}

	extra := content - sumMin
	sizes := make([]int, n)
	capped := make([]bool, n)
	unused := 0
	for i, it := range items {
		share := 0
		if totalWeight > 0 {
			share = int(math.Floor(it.Weight / totalWeight * float64(extra)))
		}
		size, hit := it.clamp(it.Min + share)
		if hit {
			unused += it.Min + share - size
			capped[i] = true
		}
		sizes[i] = size
	}

	if unused > 0 {
		free := 0.0
		for i, it := range items {
			if !capped[i] {
				free += it.Weight
			}
		}
		if free > 0 {
			for i, it := range items {
				if capped[i] {
					continue
				}
				share := int(math.Floor(it.Weight / free * float64(unused)))
				sizes[i], _ = it.clamp(sizes[i] + share)
			}
		}
	}

	used := 0
	for _, s := range sizes {
		used += s
	}
	sizes[n-1] += content - used
	return sizes, nil
}

func validate(i int, c Constraint) error {
	bad := func(msg string) error {
		return apperrors.New(apperrors.ErrCodeLayoutConstraint, msg).
			WithContext("item", i).
			WithContext("min", c.Min).
			WithContext("max", c.Max).
			WithContext("weight", c.Weight)
	}
	switch {
	case c.Min < 0:
		return bad("negative minimum")
	case c.Bounded() && c.Max < c.Min:
		return bad("maximum below minimum")
	case c.Weight < 0 || math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0):
		return bad("weight must be a finite non-negative number")
	}
	return nil
}
