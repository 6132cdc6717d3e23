package vcd

import (
	"sort"
	"strings"
)

// writeDeclarations renders the nested scope and variable declaration block.
//
// Scopes are visited in lexicographic order of their full dotted name. For
// each transition the dotted path is split on the scope separator and
// compared segment-wise with the previously open path: segments beyond the
// common prefix are closed with $upscope and the new ones opened with
// $scope, so correct nesting falls out of adjacent comparison alone, with no
// explicit tree. Intermediate segments that were never registered as scopes
// themselves are opened with the current scope's type.
func (w *Writer) writeDeclarations() {
	names := make([]string, 0, len(w.scopes))
	for name := range w.scopes {
		names = append(names, name)
	}
	sort.Strings(names)

	var open []string
	for _, name := range names {
		s := w.scopes[name]
		segs := strings.Split(name, w.scopeSep)
		common := 0
		for common < len(open) && common < len(segs) && open[common] == segs[common] {
			common++
		}
		for i := len(open); i > common; i-- {
			w.out.printf("$upscope $end\n")
		}
		open = open[:common]
		for _, seg := range segs[common:] {
			w.out.printf("$scope %s %s $end\n", s.typ, seg)
			open = append(open, seg)
		}
		for _, v := range s.vars {
			w.out.printf("%s\n", v.declaration())
		}
	}
	for range open {
		w.out.printf("$upscope $end\n")
	}
	w.out.printf("$enddefinitions $end\n")
}
