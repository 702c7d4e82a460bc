// frequency.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package fsd

// Frequency is a COM frequency in the on-wire "1AB.CDE" MHz form. It's
// kept as a string rather than a parsed float so that the original
// zero-padding round-trips.
type Frequency string

// ParseFrequency reconstructs a Frequency from the compact 5-digit
// on-wire token ("ABCDE"), prefixing the leading "1" and inserting the
// decimal point after the second digit. Callers guarantee len(s) >= 5;
// this performs no validation of its own.
func ParseFrequency(s string) Frequency {
	return Frequency("1" + s[0:2] + "." + s[2:5])
}

func (f Frequency) String() string {
	return string(f)
}
