// label.go generates unique assembly basic-block labels. vslc generates
// labels through a goroutine listening on channels because multiple worker
// threads call NewLabel concurrently; spec §5 mandates single-threaded
// compilation, so this is a plain counter instead.

package util

import "fmt"

// LabelGen produces basic-block labels following spec §4.9's scheme:
// ".L_<funcname>_<bbname>_<seq>" when a block name is given, or
// ".L_<funcname>_<seq>" when bbName is empty. (IR blocks always carry a
// name, so riscv.labelBlocks always takes the first form, %skipped blocks
// included.)
type LabelGen struct {
	Func string
	seq  int
}

// NewLabelGen returns a label generator scoped to the given function name.
func NewLabelGen(funcName string) *LabelGen {
	return &LabelGen{Func: funcName}
}

// Next returns a fresh label, optionally incorporating a source block name.
func (g *LabelGen) Next(bbName string) string {
	n := g.seq
	g.seq++
	if bbName != "" {
		return fmt.Sprintf(".L_%s_%s_%d", g.Func, bbName, n)
	}
	return fmt.Sprintf(".L_%s_%d", g.Func, n)
}
