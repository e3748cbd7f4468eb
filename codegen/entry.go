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

import "github.com/nilsson-lang/vslgen/ast"

// emitProcessEntry emits the unprefixed "main" symbol the C runtime
// calls directly: it validates argc against the entry function's
// arity, converts argv with strtol when there are arguments to convert,
// calls the entry function, and tails into exit.
//
// entry.NParms is a compile-time constant, so — unlike a hand-written
// runtime shim that would have to discover arity dynamically — the
// number of strtol conversions, the set of registers popped, and
// whether any stack-resident arguments remain for the callee are all
// decided here in Go, not by an extra runtime branch in the emitted
// assembly. The one genuinely dynamic piece is the conversion loop
// itself, which walks argv at run time using the classic loop/%rcx
// counter idiom.
func emitProcessEntry(e *Emitter, entry *ast.Symbol) {
	e.Directive(".globl main")
	e.Label("main")
	e.Inst("pushq %%rbp")
	e.Inst("movq %%rsp, %%rbp")
	e.Inst("decq %%rdi")
	e.Inst("cmpq $%d, %%rdi", entry.NParms)
	e.Inst("jne ABORT")

	if entry.NParms > 0 {
		extra := maxInt(0, entry.NParms-6)
		padding := int32((16 - (extra*8)%16) % 16)
		if padding > 0 {
			e.Inst("subq $%d, %%rsp", padding)
		}
		e.Inst("movq %%rdi, %%rcx")
		e.Inst("movq %%rsi, %%rbx")
		e.Label("PARSE_ARGV")
		e.Inst("movq (%%rbx,%%rcx,8), %%rdi")
		e.Inst("xorq %%rsi, %%rsi")
		e.Inst("movq $10, %%rdx")
		// strtol may clobber %rcx, and the pushes below leave %rsp 8 bytes
		// off on every other iteration: keep the counter and %rsp in
		// callee-saved registers and align %rsp for the call.
		e.Inst("movq %%rcx, %%r12")
		e.Inst("movq %%rsp, %%r13")
		e.Inst("andq $-16, %%rsp")
		e.Inst("call strtol")
		e.Inst("movq %%r13, %%rsp")
		e.Inst("movq %%r12, %%rcx")
		e.Inst("pushq %%rax")
		e.Inst("loop PARSE_ARGV")
		for i := 0; i < minInt(6, entry.NParms); i++ {
			e.Inst("popq %s", argRegisters[i].operand())
		}
	}

	e.Inst("call _func_%s", entry.Name)
	e.Inst("movq %%rax, %%rdi")
	e.Inst("call exit")

	e.Label("ABORT")
	e.Inst("movq $.errout, %%rdi")
	e.Inst("call puts")
	e.Label("END")
	e.Inst("movq $0, %%rdi")
	e.Inst("call exit")
}
