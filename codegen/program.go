// Copyright 2025 vslgen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codegen

import (
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"

	"github.com/nilsson-lang/vslgen/ast"
)

// Generate translates prog into textual x86-64 AT&T assembly and writes
// it to w: the string table and format strings, the BSS for globals, one
// function per VSL function, and the process entry point. It performs
// no I/O beyond writing to w and returns the first error encountered,
// whether a generator fatal condition (see errors.go) or an I/O failure
// from w.
func Generate(w io.Writer, prog *ast.Program) error {
	e := NewEmitter(w)

	emitStringTable(e, prog)
	emitGlobals(e, prog)

	e.Directive(".section .text")
	funcs := sortedFunctions(prog)
	for _, fn := range funcs {
		if err := emitFunction(e, fn); err != nil {
			return err
		}
	}

	entry, err := chooseEntry(funcs)
	if err != nil {
		return err
	}
	emitProcessEntry(e, entry)

	return e.Err()
}

// sortedFunctions returns every Function symbol in prog.Globals in
// declaration order.
func sortedFunctions(prog *ast.Program) []*ast.Symbol {
	funcs := lo.Filter(lo.Values(prog.Globals), func(s *ast.Symbol, _ int) bool {
		return s.Kind == ast.Function
	})
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].Seq < funcs[j].Seq })
	return funcs
}

// sortedGlobals returns every global_var symbol in prog.Globals in
// declaration order.
func sortedGlobals(prog *ast.Program) []*ast.Symbol {
	globals := lo.Filter(lo.Values(prog.Globals), func(s *ast.Symbol, _ int) bool {
		return s.Kind == ast.GlobalVar
	})
	sort.Slice(globals, func(i, j int) bool { return globals[i].Seq < globals[j].Seq })
	return globals
}

// chooseEntry selects the program's entry function: a symbol literally
// named "main" if one exists, otherwise the function with the smallest
// declaration sequence number. Unlike the source's non-short-circuited
// "!main_lock &&" tie-break, this is an ordinary short-circuited
// comparison (design note: corrected tie-break).
func chooseEntry(funcs []*ast.Symbol) (*ast.Symbol, error) {
	if len(funcs) == 0 {
		return nil, genErrorf("", "program has no functions")
	}
	var best *ast.Symbol
	for _, fn := range funcs {
		if fn.Name == "main" {
			return fn, nil
		}
		if best == nil || fn.Seq < best.Seq {
			best = fn
		}
	}
	return best, nil
}

func emitStringTable(e *Emitter, prog *ast.Program) {
	e.Directive(".section .rodata")
	e.Label(".newline")
	e.Directive(`.asciz "\n"`)
	e.Label(".intout")
	e.Directive(`.asciz "%ld "`)
	e.Label(".strout")
	e.Directive(`.asciz "%s "`)
	e.Label(".errout")
	e.Directive(`.asciz "Wrong number of arguments"`)
	for i, lit := range prog.Strings {
		e.Label(fmt.Sprintf(".STR%d", i))
		e.Directive(".asciz " + lit)
	}
}

func emitGlobals(e *Emitter, prog *ast.Program) {
	e.Directive(".section .bss")
	e.Directive(".align 8")
	for _, sym := range sortedGlobals(prog) {
		e.Label("." + sym.Name)
		e.Directive(".skip 8")
	}
}
