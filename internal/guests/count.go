package guests

import (
	"errors"
	"strings"
)

// Floor is the business minimum for every diet bucket.
const Floor = 5

var ErrUnknownBucket = errors.New("unknown guest bucket")

// Bucket names one diet group of the guest count.
type Bucket string

const (
	Veg    Bucket = "veg"
	NonVeg Bucket = "nonVeg"
	Jain   Bucket = "jain"
)

// ParseBucket accepts the canonical bucket keys and their snake/lower variants.
func ParseBucket(raw string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "veg":
		return Veg, nil
	case "nonveg", "non_veg", "non-veg":
		return NonVeg, nil
	case "jain":
		return Jain, nil
	default:
		return "", ErrUnknownBucket
	}
}

// Count is the veg / non-veg / jain guest triple. Its JSON shape matches the
// stored snapshot under the biteAffair_guestCount key.
type Count struct {
	Veg    int `json:"veg"`
	NonVeg int `json:"nonVeg"`
	Jain   int `json:"jain"`
}

// Default is used whenever no guest count has been stored yet.
func Default() Count {
	return Count{Veg: 10, NonVeg: 8, Jain: 5}
}

// Clamp raises n to the floor.
func Clamp(n int) int {
	if n < Floor {
		return Floor
	}
	return n
}

// Get returns the value of one bucket.
func (c Count) Get(b Bucket) int {
	switch b {
	case Veg:
		return c.Veg
	case NonVeg:
		return c.NonVeg
	case Jain:
		return c.Jain
	}
	return 0
}

// With returns a copy with bucket b set to n, clamped to the floor.
func (c Count) With(b Bucket, n int) Count {
	n = Clamp(n)
	switch b {
	case Veg:
		c.Veg = n
	case NonVeg:
		c.NonVeg = n
	case Jain:
		c.Jain = n
	}
	return c
}

// Total is the sum of all three buckets.
func (c Count) Total() int {
	return c.Veg + c.NonVeg + c.Jain
}

// Normalized clamps every bucket to the floor.
func (c Count) Normalized() Count {
	return Count{
		Veg:    Clamp(c.Veg),
		NonVeg: Clamp(c.NonVeg),
		Jain:   Clamp(c.Jain),
	}
}

// Seeded fills zero buckets with the defaults and clamps the result. Booking
// seeds leave the buckets of other meal types at zero.
func Seeded(seed Count) Count {
	d := Default()
	if seed.Veg == 0 {
		seed.Veg = d.Veg
	}
	if seed.NonVeg == 0 {
		seed.NonVeg = d.NonVeg
	}
	if seed.Jain == 0 {
		seed.Jain = d.Jain
	}
	return seed.Normalized()
}
