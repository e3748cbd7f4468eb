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

// emitValue emits n's value into dst. It dispatches on the node's own
// kind rather than assuming every value-producing node is wrapped in an
// Expression: leaves (Identifier, Number) are emitted directly, and an
// Expression node is handed to emitExpression for its unary/binary/call
// cases. Return is always illegal beneath a value position: every
// statement that emits a value passes an emitCtx with returned == nil,
// and the operand emission below keeps that context or starts a fresh
// one with returned == nil.
func emitValue(c *emitCtx, n *ast.Node, dst Destination) error {
	switch n.Kind {
	case ast.Identifier:
		return loadSymbolInto(c, n.Entry, dst)
	case ast.Number:
		c.w.Inst("movq $%d, %s", n.Int64(), dst.operand())
		return nil
	case ast.Expression:
		return emitExpression(c, n, dst)
	default:
		return genErrorf(c.fn.Name, "unexpected node kind %d in value position", n.Kind)
	}
}

// loadSymbolInto moves sym's value into dst, routing through %rax only
// when dst is not itself a register (there is no "load symbol directly
// into memory" instruction, so this is the one place that widens the
// single-instruction symbol-access contract of symbol.go to an arbitrary
// destination).
func loadSymbolInto(c *emitCtx, sym *ast.Symbol, dst Destination) error {
	if reg, ok := destinationRegister(dst); ok {
		return loadSymbol(c, sym, reg)
	}
	if err := loadSymbol(c, sym, RAX); err != nil {
		return err
	}
	c.w.Inst("movq %%rax, %s", dst.operand())
	return nil
}

func destinationRegister(d Destination) (Register, bool) {
	if d.kind == destRegister {
		return d.reg, true
	}
	return "", false
}

// emitExpression implements the three Expression cases of the spec: an
// opless wrapper (a call, or a transparent pass-through to a single
// child), a unary op, or a binary op.
func emitExpression(c *emitCtx, n *ast.Node, dst Destination) error {
	op := n.Op()
	switch {
	case n.Data == nil && len(n.Children) == 2:
		return emitCall(c, n.Children[0], n.Children[1], dst)
	case n.Data == nil && len(n.Children) == 1:
		return emitValue(c, n.Children[0], dst)
	case len(n.Children) == 1:
		return emitUnary(c, op, n.Children[0], dst)
	case len(n.Children) == 2:
		return emitBinary(c, op, n.Children[0], n.Children[1], dst)
	default:
		return genErrorf(c.fn.Name, "malformed expression node (data=%v, %d children)", n.Data, len(n.Children))
	}
}

func emitUnary(c *emitCtx, op string, operand *ast.Node, dst Destination) error {
	if err := emitValue(c, operand, dst); err != nil {
		return err
	}
	switch op {
	case "-":
		c.w.Inst("negq %s", dst.operand())
	case "~":
		c.w.Inst("notq %s", dst.operand())
	default:
		return genErrorf(c.fn.Name, "unknown unary operator %q", op)
	}
	return nil
}

func emitBinary(c *emitCtx, op string, left, right *ast.Node, dst Destination) error {
	fresh := c.withReturned(nil)
	if err := emitValue(fresh, right, Reg(RAX)); err != nil {
		return err
	}
	c.frame.push(c.w, RAX)
	if err := emitValue(fresh, left, Reg(RAX)); err != nil {
		return err
	}
	c.frame.pop(c.w, R10)
	// Left is now in %rax, right in %r10.
	switch op {
	case "|":
		c.w.Inst("orq %%r10, %%rax")
	case "^":
		c.w.Inst("xorq %%r10, %%rax")
	case "&":
		c.w.Inst("andq %%r10, %%rax")
	case "+":
		c.w.Inst("addq %%r10, %%rax")
	case "-":
		c.w.Inst("subq %%r10, %%rax")
	case "*":
		c.w.Inst("imulq %%r10")
	case "/":
		c.w.Inst("cqto")
		c.w.Inst("idivq %%r10")
	default:
		return genErrorf(c.fn.Name, "unknown binary operator %q", op)
	}
	if !dst.isRegister(RAX) {
		c.w.Inst("movq %%rax, %s", dst.operand())
	}
	return nil
}

// emitCall emits a direct call to the function named by ident.Entry,
// evaluating each argument expression straight into its final call-site
// location (register or stack cell) rather than staging through %rax,
// eliminating a push/pop per argument. argList may be nil (zero
// arguments); otherwise its children are the argument expressions in
// order.
func emitCall(c *emitCtx, ident, argList *ast.Node, dst Destination) error {
	if ident.Kind != ast.Identifier || ident.Entry == nil {
		return genErrorf(c.fn.Name, "malformed call: missing callee identifier")
	}
	callee := ident.Entry
	if callee.Kind != ast.Function {
		return genErrorf(c.fn.Name, "%q is not callable", callee.Name)
	}
	var args []*ast.Node
	if argList != nil {
		args = argList.Children
	}
	if len(args) != callee.NParms {
		return genErrorf(c.fn.Name, "call to %s expects %d argument(s), got %d from %s", callee.Name, callee.NParms, len(args), c.fn.Name)
	}

	stackSlots := int32(maxInt(6, callee.NParms) - 6)
	padding := c.frame.allocateAlignedStack(c.w, stackSlots)

	fresh := c.withReturned(nil)
	for i, arg := range args {
		var argDst Destination
		if i < 6 {
			argDst = Reg(argRegisters[i])
		} else {
			argDst = CallArg(int32(i - 6))
		}
		if err := emitValue(fresh, arg, argDst); err != nil {
			return err
		}
	}

	c.w.Inst("call _func_%s", callee.Name)
	c.frame.unalignStack(c.w, padding)

	if !dst.isRegister(RAX) {
		c.w.Inst("movq %%rax, %s", dst.operand())
	}
	return nil
}
