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

	"github.com/samber/lo"

	"github.com/nilsson-lang/vslgen/ast"
)

// emitStmt dispatches a single statement node. It is the exhaustive
// match the design notes ask for in place of the source's
// switch-with-fallthrough-to-container-walk: Block is its own Kind, not
// inferred by "none of the above".
func emitStmt(c *emitCtx, n *ast.Node) error {
	switch n.Kind {
	case ast.Assignment:
		return emitAssignment(c, n)
	case ast.AddAssign, ast.SubAssign, ast.MulAssign, ast.DivAssign:
		return emitCompoundAssign(c, n)
	case ast.Print:
		return emitPrint(c, n)
	case ast.Return:
		return emitReturn(c, n)
	case ast.If:
		return emitIf(c, n)
	case ast.While:
		return emitWhile(c, n)
	case ast.Continue:
		return emitContinue(c, n)
	case ast.Declaration:
		return nil
	case ast.Block:
		return emitBlock(c, n)
	default:
		return genErrorf(c.fn.Name, "unexpected node kind %d in statement position", n.Kind)
	}
}

// emitBlock walks a container's children in order, skipping Declaration
// nodes, and stops early once the scope's returned flag is set — by a
// child of this very block, or already on entry (a block reached after
// its parent already returned need not, and must not, emit anything).
func emitBlock(c *emitCtx, n *ast.Node) error {
	if c.isReturned() {
		return nil
	}
	children := lo.Filter(n.Children, func(ch *ast.Node, _ int) bool {
		return ch.Kind != ast.Declaration
	})
	for _, ch := range children {
		if err := emitStmt(c, ch); err != nil {
			return err
		}
		if c.isReturned() {
			break
		}
	}
	return nil
}

func emitAssignment(c *emitCtx, n *ast.Node) error {
	if len(n.Children) != 2 || n.Children[0].Entry == nil {
		return genErrorf(c.fn.Name, "malformed assignment")
	}
	dest, err := symbolDestination(c, n.Children[0].Entry)
	if err != nil {
		return err
	}
	return emitValue(c.withReturned(nil), n.Children[1], dest)
}

func emitCompoundAssign(c *emitCtx, n *ast.Node) error {
	if len(n.Children) != 2 || n.Children[0].Entry == nil {
		return genErrorf(c.fn.Name, "malformed compound assignment")
	}
	sym := n.Children[0].Entry
	fresh := c.withReturned(nil)
	if err := emitValue(fresh, n.Children[1], Reg(R10)); err != nil {
		return err
	}
	if err := loadSymbol(c, sym, RAX); err != nil {
		return err
	}
	switch n.Kind {
	case ast.AddAssign:
		c.w.Inst("addq %%r10, %%rax")
	case ast.SubAssign:
		c.w.Inst("subq %%r10, %%rax")
	case ast.MulAssign:
		c.w.Inst("imulq %%r10")
	case ast.DivAssign:
		c.w.Inst("cqto")
		c.w.Inst("idivq %%r10")
	}
	return storeSymbol(c, sym, RAX)
}

func emitReturn(c *emitCtx, n *ast.Node) error {
	if c.returned == nil {
		return genErrorf(c.fn.Name, "return outside a function body")
	}
	if len(n.Children) != 1 {
		return genErrorf(c.fn.Name, "malformed return statement")
	}
	if err := emitValue(c.withReturned(nil), n.Children[0], Reg(RAX)); err != nil {
		return err
	}
	c.setReturned()
	c.w.Inst("leave")
	c.w.Inst("ret")
	return nil
}

func emitContinue(c *emitCtx, n *ast.Node) error {
	if c.cont == "" {
		return genErrorf(c.fn.Name, "continue outside a loop")
	}
	c.w.Inst("jmp %s", c.cont)
	return nil
}

func emitIf(c *emitCtx, n *ast.Node) error {
	if len(n.Children) < 2 {
		return genErrorf(c.fn.Name, "malformed if statement")
	}
	rel, thenBody := n.Children[0], n.Children[1]
	var elseBody *ast.Node
	if len(n.Children) > 2 {
		elseBody = n.Children[2]
	}

	if err := emitRelation(c, rel); err != nil {
		return err
	}
	k := c.nextMangle()
	endifLabel := labelName(c.fn.Name, "ENDIF", k)
	target := endifLabel
	var elseLabel string
	if elseBody != nil {
		elseLabel = labelName(c.fn.Name, "ELSE", k)
		target = elseLabel
	}
	inv, err := inverseJump(c, rel.Op())
	if err != nil {
		return err
	}
	c.w.Inst("%s %s", inv, target)

	var thenReturned bool
	if err := emitBlock(c.withReturned(&thenReturned), thenBody); err != nil {
		return err
	}

	if elseBody != nil {
		c.w.Inst("jmp %s", endifLabel)
		c.w.Label(elseLabel)
		var elseReturned bool
		if err := emitBlock(c.withReturned(&elseReturned), elseBody); err != nil {
			return err
		}
	}
	c.w.Label(endifLabel)
	return nil
}

func emitWhile(c *emitCtx, n *ast.Node) error {
	if len(n.Children) != 2 {
		return genErrorf(c.fn.Name, "malformed while statement")
	}
	rel, body := n.Children[0], n.Children[1]
	k := c.nextMangle()
	checkLabel := labelName(c.fn.Name, "WCHECK", k)
	endLabel := labelName(c.fn.Name, "WEND", k)

	c.w.Label(checkLabel)
	if err := emitRelation(c, rel); err != nil {
		return err
	}
	inv, err := inverseJump(c, rel.Op())
	if err != nil {
		return err
	}
	c.w.Inst("%s %s", inv, endLabel)

	var bodyReturned bool
	bodyCtx := c.withReturned(&bodyReturned).withContinue(checkLabel)
	if err := emitBlock(bodyCtx, body); err != nil {
		return err
	}
	c.w.Inst("jmp %s", checkLabel)
	c.w.Label(endLabel)
	return nil
}

func labelName(fn, prefix string, k int32) string {
	return fmt.Sprintf("._%s_%s_%d", fn, prefix, k)
}

// emitPrint emits one formatted printf call per child item, then a
// final call printing the trailing newline. Alignment is independently
// re-established around each call because an intervening expression
// child may have pushed and popped scratch values.
func emitPrint(c *emitCtx, n *ast.Node) error {
	for _, item := range n.Children {
		switch item.Kind {
		case ast.String:
			c.w.Inst("movq $.strout, %%rdi")
			c.w.Inst("movq $.STR%d, %%rsi", item.StringIndex())
		case ast.Identifier:
			c.w.Inst("movq $.intout, %%rdi")
			if err := loadSymbol(c, item.Entry, RSI); err != nil {
				return err
			}
		case ast.Expression:
			c.w.Inst("movq $.intout, %%rdi")
			if err := emitValue(c.withReturned(nil), item, Reg(RSI)); err != nil {
				return err
			}
		default:
			return genErrorf(c.fn.Name, "unprintable node kind %d", item.Kind)
		}
		emitAlignedCall(c, "printf")
	}
	c.w.Inst("movq $.newline, %%rdi")
	emitAlignedCall(c, "printf")
	return nil
}

func emitAlignedCall(c *emitCtx, target string) {
	padding := c.frame.alignStack(c.w)
	c.w.Inst("call %s", target)
	c.frame.unalignStack(c.w, padding)
}
