package util

import "github.com/dustin/go-humanize"

// HumanCount renders an instruction/byte count the way -vb statistics are
// reported (SPEC_FULL §A.4): humanize.Comma groups large counts with commas
// instead of main.go hand-rolling the same formatting.
func HumanCount(n int) string {
	return humanize.Comma(int64(n))
}
