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

// symbolDestination translates a symbol reference into the Destination
// it lives at. A function symbol, or any symbol kind outside
// {global_var, local_var, parameter}, is a fatal error: those never
// denote a storage location an expression can read from or write to.
func symbolDestination(c *emitCtx, sym *ast.Symbol) (Destination, error) {
	if sym.Kind != ast.GlobalVar && sym.Kind != ast.LocalVar && sym.Kind != ast.Parameter {
		return Destination{}, genErrorf(c.fn.Name, "unsupported symbol type %s for %q", sym.Kind, sym.Name)
	}
	dest, ok := c.frame.destinationOf(sym)
	if !ok {
		return Destination{}, genErrorf(c.fn.Name, "unknown symbol %q", sym.Name)
	}
	return dest, nil
}

// loadSymbol emits the one instruction that moves sym's current value
// into register dst.
func loadSymbol(c *emitCtx, sym *ast.Symbol, dst Register) error {
	src, err := symbolDestination(c, sym)
	if err != nil {
		return err
	}
	c.w.Inst("movq %s, %s", src.operand(), dst.operand())
	return nil
}

// storeSymbol emits the one instruction that moves register src into
// sym's location.
func storeSymbol(c *emitCtx, sym *ast.Symbol, src Register) error {
	dst, err := symbolDestination(c, sym)
	if err != nil {
		return err
	}
	c.w.Inst("movq %s, %s", src.operand(), dst.operand())
	return nil
}
