// Package model defines what an overlay displays: three optional channels
// (percentage, caption and icon) and the gauge bar arithmetic.
package model
