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

// emitFunction emits one VSL function: the .globl/label pair, the
// prologue, the owned-slot allocation, the register-resident parameter
// spill, the body, and — only if the body did not already return on
// every path — a synthetic zero-returning epilogue.
func emitFunction(w *Emitter, fn *ast.Symbol) error {
	w.Directive(".globl _func_" + fn.Name)
	w.Label("_func_" + fn.Name)
	w.Inst("pushq %%rbp")
	w.Inst("movq %%rsp, %%rbp")

	frame := newFrame(fn)
	frame.allocateStack(w, slotCount(fn))
	frame.spillParams(w, fn)

	var mangle int32
	var returned bool
	ctx := &emitCtx{
		fn:       fn,
		frame:    frame,
		w:        w,
		mangle:   &mangle,
		returned: &returned,
	}
	if err := emitBlock(ctx, fn.Node); err != nil {
		return err
	}
	if !returned {
		w.Inst("movq $0, %%rax")
		w.Inst("leave")
		w.Inst("ret")
	}
	return nil
}
