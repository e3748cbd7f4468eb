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
	"github.com/samber/lo"

	"github.com/nilsson-lang/vslgen/ast"
)

// Frame is the pure bookkeeping half of a function's activation record:
// a shadow alignment counter plus a precomputed slot map. It performs no
// I/O of its own; every operation that changes the real stack pointer
// takes an *Emitter to write the corresponding instruction through.
type Frame struct {
	align int32
	slots map[string]Destination
}

// newFrame computes the slot (or caller-supplied-stack) destination for
// every parameter and local of fn, per the slot formula: a parameter's
// slot is min(5, nparms-1) - seq, a local's slot is seq + min(6, nparms),
// and slot i sits at byte offset -8*(i+1) from %rbp. Parameters beyond
// the sixth are never copied into owned slots; they live where the
// caller placed them, at positive offsets above the saved frame pointer.
func newFrame(fn *ast.Symbol) *Frame {
	nparms := fn.NParms
	slots := make(map[string]Destination, len(fn.Locals))
	for _, sym := range fn.Locals {
		switch sym.Kind {
		case ast.Parameter:
			if sym.Seq < 6 {
				slot := minInt(5, nparms-1) - sym.Seq
				slots[sym.Name] = FrameSlot(-8 * int32(slot+1))
			} else {
				// Return address (8 bytes) + saved %rbp (8 bytes) sit
				// between %rbp and the first caller-supplied argument.
				slots[sym.Name] = FrameSlot(16 + 8*int32(sym.Seq-6))
			}
		case ast.LocalVar:
			slot := sym.Seq + minInt(6, nparms)
			slots[sym.Name] = FrameSlot(-8 * int32(slot+1))
		}
	}
	return &Frame{slots: slots}
}

// slotCount returns the number of owned 8-byte cells the prologue must
// reserve: the registers-resident parameters plus every true local.
func slotCount(fn *ast.Symbol) int32 {
	return int32(minInt(6, fn.NParms) + (len(fn.Locals) - fn.NParms))
}

// destinationOf returns the frame or global destination of a local
// variable, parameter, or global symbol. Function symbols, or any kind
// outside {global_var, local_var, parameter}, are a caller error to ask
// for here; see symbolDestination in symbol.go for the validating
// wrapper used by the rest of the package.
func (f *Frame) destinationOf(sym *ast.Symbol) (Destination, bool) {
	if sym.Kind == ast.GlobalVar {
		return Global(sym.Name), true
	}
	d, ok := f.slots[sym.Name]
	return d, ok
}

// allocateStack reserves slots 8-byte cells at function entry.
// Immediately after the prologue's pushq %rbp; movq %rsp, %rbp, the
// return address and saved frame pointer already sum to exactly one
// alignment unit, so the counter starts at 0. slots may be odd: the
// counter then records the 8 extra bytes and later alignStack or
// allocateAlignedStack calls pad for them.
func (f *Frame) allocateStack(e *Emitter, slots int32) {
	if slots > 0 {
		e.Inst("subq $%d, %%rsp", 8*slots)
	}
	f.align += 8 * slots
}

// allocateAlignedStack reserves slots cells plus whatever padding
// restores 16-byte alignment, in a single subq, and returns the padding
// added so the caller can reverse it with unalignStack. Used immediately
// before a call whose argument area lives above %rsp.
func (f *Frame) allocateAlignedStack(e *Emitter, slots int32) int32 {
	bytes := 8 * slots
	padding := (16 - (f.align+bytes)%16) % 16
	total := bytes + padding
	if total == 0 {
		return 0
	}
	e.Inst("subq $%d, %%rsp", total)
	f.align += total
	return padding
}

// alignStack pads the stack to 16-byte alignment without reserving any
// cells, for a call with no stack-resident arguments.
func (f *Frame) alignStack(e *Emitter) int32 {
	padding := (16 - f.align%16) % 16
	if padding == 0 {
		return 0
	}
	e.Inst("subq $%d, %%rsp", padding)
	f.align += padding
	return padding
}

// unalignStack undoes a previous allocateAlignedStack or alignStack.
func (f *Frame) unalignStack(e *Emitter, padding int32) {
	if padding == 0 {
		return
	}
	e.Inst("addq $%d, %%rsp", padding)
	f.align -= padding
}

// push emits a pushq and accounts for it in the alignment counter.
func (f *Frame) push(e *Emitter, r Register) {
	e.Inst("pushq %s", r.operand())
	f.align += 8
}

// pop emits a popq and accounts for it in the alignment counter.
func (f *Frame) pop(e *Emitter, r Register) {
	e.Inst("popq %s", r.operand())
	f.align -= 8
}

// spillParams writes the function's register-resident parameters (the
// first min(6, nparms) of them) down into their owned frame slots, in
// reverse declaration order so that parameter 0 — farthest from %rbp of
// the register-resident parameters — is spilled last, mirroring the teacher's own reverse walk of a parameter
// list when assigning stack offsets (see parser_amd64.go's
// []lo.Tuple2[int, Parameter] stack).
func (f *Frame) spillParams(e *Emitter, fn *ast.Symbol) {
	n := minInt(6, fn.NParms)
	bySeq := make([]*ast.Symbol, n)
	for _, sym := range fn.Locals {
		if sym.Kind == ast.Parameter && sym.Seq < n {
			bySeq[sym.Seq] = sym
		}
	}
	var pending []lo.Tuple2[Register, *ast.Symbol]
	for i, sym := range bySeq {
		pending = append(pending, lo.Tuple2[Register, *ast.Symbol]{A: argRegisters[i], B: sym})
	}
	for i := len(pending) - 1; i >= 0; i-- {
		reg, sym := pending[i].A, pending[i].B
		dest, _ := f.destinationOf(sym)
		e.Inst("movq %s, %s", reg.operand(), dest.operand())
	}
}
