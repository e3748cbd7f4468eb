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
	"strings"
	"testing"

	"github.com/nilsson-lang/vslgen/ast"
)

func TestEmitReturn_OutsideFunctionIsFatal(t *testing.T) {
	e := NewEmitter(&strings.Builder{})
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn)
	c.returned = nil
	n := &ast.Node{Kind: ast.Return, Children: []*ast.Node{{Kind: ast.Number, Data: int64(0)}}}
	if err := emitReturn(c, n); err == nil {
		t.Fatalf("expected an error for return with returned == nil")
	}
}

func TestEmitReturn_SetsReturnedFlag(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn)
	n := &ast.Node{Kind: ast.Return, Children: []*ast.Node{{Kind: ast.Number, Data: int64(0)}}}
	if err := emitReturn(c, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.isReturned() {
		t.Errorf("expected returned flag to be set")
	}
	if !strings.Contains(sb.String(), "leave") || !strings.Contains(sb.String(), "ret") {
		t.Errorf("expected leave/ret epilogue, got %q", sb.String())
	}
}

func TestEmitContinue_OutsideLoopIsFatal(t *testing.T) {
	e := NewEmitter(&strings.Builder{})
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn)
	if err := emitContinue(c, &ast.Node{Kind: ast.Continue}); err == nil {
		t.Fatalf("expected an error for continue outside a loop")
	}
}

func TestEmitContinue_JumpsToContinueLabel(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn).withContinue("._f_WCHECK_0")
	if err := emitContinue(c, &ast.Node{Kind: ast.Continue}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sb.String(), "jmp ._f_WCHECK_0") {
		t.Errorf("got %q", sb.String())
	}
}

func TestEmitBlock_SkipsDeclarationsAndStopsOnReturn(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn)
	block := &ast.Node{Kind: ast.Block, Children: []*ast.Node{
		{Kind: ast.Declaration},
		{Kind: ast.Return, Children: []*ast.Node{{Kind: ast.Number, Data: int64(1)}}},
		{Kind: ast.Return, Children: []*ast.Node{{Kind: ast.Number, Data: int64(2)}}},
	}}
	if err := emitBlock(c, block); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	if strings.Contains(out, "$2") {
		t.Errorf("expected the second return to be skipped once returned, got %q", out)
	}
	if !strings.Contains(out, "$1") {
		t.Errorf("expected the first return to be emitted, got %q", out)
	}
}

func TestEmitBlock_NoOpWhenAlreadyReturned(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn)
	c.setReturned()
	block := &ast.Node{Kind: ast.Block, Children: []*ast.Node{
		{Kind: ast.Return, Children: []*ast.Node{{Kind: ast.Number, Data: int64(9)}}},
	}}
	if err := emitBlock(c, block); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sb.String() != "" {
		t.Errorf("expected no output for a block entered already returned, got %q", sb.String())
	}
}

func TestEmitIf_NoElse_UsesEndifAsJumpTarget(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn)
	rel := &ast.Node{Kind: ast.Relation, Data: "=", Children: []*ast.Node{
		{Kind: ast.Number, Data: int64(1)}, {Kind: ast.Number, Data: int64(1)},
	}}
	then := &ast.Node{Kind: ast.Block}
	n := &ast.Node{Kind: ast.If, Children: []*ast.Node{rel, then}}
	if err := emitIf(c, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "jne ._f_ENDIF_0") {
		t.Errorf("expected a jne directly to the endif label, got %q", out)
	}
	if strings.Contains(out, "ELSE") {
		t.Errorf("did not expect an ELSE label with no else branch, got %q", out)
	}
}

func TestEmitIf_WithElse_UsesElseAsJumpTargetAndJumpsOverIt(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn)
	rel := &ast.Node{Kind: ast.Relation, Data: ">", Children: []*ast.Node{
		{Kind: ast.Number, Data: int64(1)}, {Kind: ast.Number, Data: int64(0)},
	}}
	then := &ast.Node{Kind: ast.Block}
	els := &ast.Node{Kind: ast.Block}
	n := &ast.Node{Kind: ast.If, Children: []*ast.Node{rel, then, els}}
	if err := emitIf(c, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "jng ._f_ELSE_0") {
		t.Errorf("expected a jng to the else label, got %q", out)
	}
	if !strings.Contains(out, "jmp ._f_ENDIF_0") {
		t.Errorf("expected the then branch to jump over the else branch, got %q", out)
	}
	if !strings.Contains(out, "._f_ELSE_0:") || !strings.Contains(out, "._f_ENDIF_0:") {
		t.Errorf("expected both labels to be defined, got %q", out)
	}
}

func TestEmitIf_ReturnInThenDoesNotSilenceOuterScope(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn)
	rel := &ast.Node{Kind: ast.Relation, Data: "=", Children: []*ast.Node{
		{Kind: ast.Number, Data: int64(1)}, {Kind: ast.Number, Data: int64(1)},
	}}
	then := &ast.Node{Kind: ast.Block, Children: []*ast.Node{
		{Kind: ast.Return, Children: []*ast.Node{{Kind: ast.Number, Data: int64(1)}}},
	}}
	ifNode := &ast.Node{Kind: ast.If, Children: []*ast.Node{rel, then}}
	outer := &ast.Node{Kind: ast.Block, Children: []*ast.Node{
		ifNode,
		{Kind: ast.Return, Children: []*ast.Node{{Kind: ast.Number, Data: int64(2)}}},
	}}
	if err := emitBlock(c, outer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sb.String(), "$2") {
		t.Errorf("expected the statement after the if to still run, got %q", sb.String())
	}
}

func TestEmitWhile_LabelsAndContinueTarget(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn)
	rel := &ast.Node{Kind: ast.Relation, Data: "<", Children: []*ast.Node{
		{Kind: ast.Number, Data: int64(1)}, {Kind: ast.Number, Data: int64(3)},
	}}
	body := &ast.Node{Kind: ast.Block, Children: []*ast.Node{{Kind: ast.Continue}}}
	n := &ast.Node{Kind: ast.While, Children: []*ast.Node{rel, body}}
	if err := emitWhile(c, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "._f_WCHECK_0:") || !strings.Contains(out, "._f_WEND_0:") {
		t.Errorf("expected WCHECK/WEND labels, got %q", out)
	}
	if !strings.Contains(out, "jmp ._f_WCHECK_0") {
		t.Errorf("expected continue to target the WCHECK label, got %q", out)
	}
	if !strings.Contains(out, "jnl ._f_WEND_0") {
		t.Errorf("expected the inverse jump to skip the body on exit, got %q", out)
	}
}

func TestEmitWhile_NestedContinueTargetsInnermostLoop(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	fn := funcSymbol(0, nil)
	c := newTestCtx(e, fn)

	innerRel := &ast.Node{Kind: ast.Relation, Data: "<", Children: []*ast.Node{
		{Kind: ast.Number, Data: int64(1)}, {Kind: ast.Number, Data: int64(3)},
	}}
	innerBody := &ast.Node{Kind: ast.Block, Children: []*ast.Node{{Kind: ast.Continue}}}
	inner := &ast.Node{Kind: ast.While, Children: []*ast.Node{innerRel, innerBody}}

	outerRel := &ast.Node{Kind: ast.Relation, Data: "<", Children: []*ast.Node{
		{Kind: ast.Number, Data: int64(1)}, {Kind: ast.Number, Data: int64(3)},
	}}
	outerBody := &ast.Node{Kind: ast.Block, Children: []*ast.Node{inner}}
	outer := &ast.Node{Kind: ast.While, Children: []*ast.Node{outerRel, outerBody}}

	if err := emitWhile(c, outer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "jmp ._f_WCHECK_1") {
		t.Errorf("expected the inner continue to target the inner WCHECK label (mangle 1), got %q", out)
	}
	// The outer loop's own back-edge is the only jump to the outer WCHECK label.
	if n := strings.Count(out, "jmp ._f_WCHECK_0"); n != 1 {
		t.Errorf("did not expect the inner continue to target the outer WCHECK label, got %d jumps to it in %q", n, out)
	}
}

func TestEmitCompoundAssign_AllOperators(t *testing.T) {
	tests := []struct {
		kind ast.NodeKind
		want string
	}{
		{ast.AddAssign, "addq %r10, %rax"},
		{ast.SubAssign, "subq %r10, %rax"},
		{ast.MulAssign, "imulq %r10"},
		{ast.DivAssign, "idivq %r10"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var sb strings.Builder
			e := NewEmitter(&sb)
			sym := &ast.Symbol{Name: "x", Kind: ast.LocalVar, Seq: 0}
			fn := funcSymbol(0, map[string]*ast.Symbol{"x": sym})
			c := newTestCtx(e, fn)
			n := &ast.Node{Kind: tt.kind, Children: []*ast.Node{
				{Kind: ast.Identifier, Entry: sym},
				{Kind: ast.Number, Data: int64(1)},
			}}
			if err := emitCompoundAssign(c, n); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(sb.String(), tt.want) {
				t.Errorf("got %q, want it to contain %q", sb.String(), tt.want)
			}
		})
	}
}

func TestEmitPrint_MixOfStringIdentifierAndExpression(t *testing.T) {
	var sb strings.Builder
	e := NewEmitter(&sb)
	n0 := &ast.Symbol{Name: "n", Kind: ast.Parameter, Seq: 0}
	fn := funcSymbol(1, map[string]*ast.Symbol{"n": n0})
	c := newTestCtx(e, fn)
	items := &ast.Node{Kind: ast.Print, Children: []*ast.Node{
		{Kind: ast.String, Data: 0},
		{Kind: ast.Identifier, Entry: n0},
		{Kind: ast.Expression, Data: "+", Children: []*ast.Node{
			{Kind: ast.Identifier, Entry: n0}, {Kind: ast.Number, Data: int64(1)},
		}},
	}}
	if err := emitPrint(c, items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, ".strout") || !strings.Contains(out, ".STR0") {
		t.Errorf("expected a string item to format via .strout/.STR0, got %q", out)
	}
	if !strings.Contains(out, ".intout") {
		t.Errorf("expected integer items to format via .intout, got %q", out)
	}
	if !strings.Contains(out, ".newline") {
		t.Errorf("expected a trailing newline call, got %q", out)
	}
	if strings.Count(out, "call printf") != 4 {
		t.Errorf("expected 4 printf calls (3 items + newline), got %d in %q", strings.Count(out, "call printf"), out)
	}
}
