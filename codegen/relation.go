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

// emitRelation evaluates a Relation node's two sides and leaves the
// AT&T-order comparison flags set (left compared against right), ready
// for the caller to follow with an inverse-conditional jump.
func emitRelation(c *emitCtx, n *ast.Node) error {
	if n.Kind != ast.Relation || len(n.Children) != 2 {
		return genErrorf(c.fn.Name, "malformed relation node")
	}
	fresh := c.withReturned(nil)
	if err := emitValue(fresh, n.Children[0], Reg(RAX)); err != nil {
		return err
	}
	c.frame.push(c.w, RAX)
	if err := emitValue(fresh, n.Children[1], Reg(R11)); err != nil {
		return err
	}
	c.frame.pop(c.w, R10)
	c.w.Inst("cmpq %%r11, %%r10")
	return nil
}

// inverseJump returns the AT&T mnemonic for the jump that skips the
// then-branch or loop body when the relation does NOT hold: "=" is
// skipped by jne, ">" by jng, "<" by jnl. Any other operator is a fatal
// error — the front end is trusted to have produced only these three.
func inverseJump(c *emitCtx, op string) (string, error) {
	switch op {
	case "=":
		return "jne", nil
	case ">":
		return "jng", nil
	case "<":
		return "jnl", nil
	default:
		return "", genErrorf(c.fn.Name, "unknown relation operator %q", op)
	}
}
