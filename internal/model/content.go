package model

import (
	"strconv"
	"strings"
)

// Channel is an optional string value. The zero value is absent.
type Channel struct {
	value   string
	present bool
}

// Some returns a present channel holding v.
func Some(v string) Channel {
	return Channel{value: v, present: true}
}

// None returns an absent channel.
func None() Channel {
	return Channel{}
}

// Get returns the value and whether the channel is present.
func (c Channel) Get() (string, bool) {
	return c.value, c.present
}

// Present reports whether the channel carries a value.
func (c Channel) Present() bool {
	return c.present
}

// String returns the value, or "" when absent.
func (c Channel) String() string {
	return c.value
}

// Content holds what an overlay displays. Each channel is independent.
type Content struct {
	Percentage Channel // raw percentage as given on the command line
	Caption    Channel
	Icon       Channel // theme icon name or image file path
}

// IsEmpty returns true if no channel is present.
func (c Content) IsEmpty() bool {
	return !c.Percentage.Present() && !c.Caption.Present() && !c.Icon.Present()
}

// Value parses the percentage channel as a base-10 integer.
// Returns false if the channel is absent or not an integer.
func (c Content) Value() (int, bool) {
	raw, ok := c.Percentage.Get()
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

// BarCount returns how many of numBars gauge bars represent value percent.
// The result is floor(numBars*value/100) clamped to [0, numBars].
func BarCount(numBars, value int) int {
	switch {
	case numBars <= 0 || value <= 0:
		return 0
	case value >= 100:
		return numBars
	}
	return numBars * value / 100
}
