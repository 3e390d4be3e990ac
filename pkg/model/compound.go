package model

import "strings"

// Compound is the tyre rubber type used for a stint.
type Compound string

const (
	CompoundSoft         Compound = "SOFT"
	CompoundMedium       Compound = "MEDIUM"
	CompoundHard         Compound = "HARD"
	CompoundIntermediate Compound = "INTERMEDIATE"
	CompoundWet          Compound = "WET"
	CompoundUnknown      Compound = "UNKNOWN"
)

// ParseCompound maps a provider compound string onto the enum.
// Anything unrecognized (including empty) becomes CompoundUnknown.
func ParseCompound(arg string) Compound {
	switch c := Compound(strings.ToUpper(strings.TrimSpace(arg))); c {
	case CompoundSoft, CompoundMedium, CompoundHard, CompoundIntermediate, CompoundWet:
		return c
	default:
		return CompoundUnknown
	}
}

// Known reports whether the compound carries real tyre information.
func (c Compound) Known() bool {
	return c != CompoundUnknown && c != ""
}
