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

// emitCtx is the "goal" threaded through a function's recursive
// emission: the enclosing function, its frame, and the function-lifetime
// mutable cells (mangle counter, and per-scope returned flag / continue
// label). Rather than the source's several independently-threaded
// mutable out-parameters, every cell here is owned by one emitCtx built
// once per function; entering an if/while body only swaps in a fresh
// returned pointer (and, for while, a continue label) via the With*
// helpers below, never a fresh struct for the shared counters.
type emitCtx struct {
	fn      *ast.Symbol
	frame   *Frame
	w       *Emitter
	mangle  *int32
	cont    string // continue target label, "" if no enclosing loop
	returned *bool  // nil means "return is illegal here"
}

// withReturned returns a copy of c scoped to a fresh returned flag, used
// when entering a then-branch, else-branch, or loop body so that a
// return inside one arm does not silence a sibling arm.
func (c *emitCtx) withReturned(flag *bool) *emitCtx {
	cp := *c
	cp.returned = flag
	return &cp
}

// withContinue returns a copy of c whose continue target is label, used
// when entering a while body.
func (c *emitCtx) withContinue(label string) *emitCtx {
	cp := *c
	cp.cont = label
	return &cp
}

// isReturned reports whether the current scope has already emitted a
// return on every path reachable so far.
func (c *emitCtx) isReturned() bool {
	return c.returned != nil && *c.returned
}

// setReturned marks the current scope as having emitted a return. It is
// a caller error to invoke this when returned is illegal (nil); callers
// must check that themselves, per emitReturn in stmt.go.
func (c *emitCtx) setReturned() {
	*c.returned = true
}

// nextMangle returns the function's current label-mangle index and
// increments it, completing one control structure.
func (c *emitCtx) nextMangle() int32 {
	k := *c.mangle
	*c.mangle++
	return k
}
