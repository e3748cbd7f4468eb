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

// Package fixtures hand-builds ast.Program values for the conformance
// scenarios spec'd for the code generator, in lieu of a real VSL lexer
// and parser (out of scope for this repository). Each fixture is a
// literal tree, not parsed from VSL source text.
package fixtures

import "github.com/nilsson-lang/vslgen/ast"

// funcBuilder assembles one function's symbol and locals map while
// tracking declaration order for parameters and locals separately.
type funcBuilder struct {
	sym       *ast.Symbol
	nextParam int
	nextLocal int
}

func newFunc(name string, seq int) *funcBuilder {
	return &funcBuilder{
		sym: &ast.Symbol{
			Name:   name,
			Kind:   ast.Function,
			Seq:    seq,
			Locals: make(map[string]*ast.Symbol),
		},
	}
}

func (b *funcBuilder) param(name string) *ast.Symbol {
	sym := &ast.Symbol{Name: name, Kind: ast.Parameter, Seq: b.nextParam}
	b.nextParam++
	b.sym.NParms++
	b.sym.Locals[name] = sym
	return sym
}

func (b *funcBuilder) local(name string) *ast.Symbol {
	sym := &ast.Symbol{Name: name, Kind: ast.LocalVar, Seq: b.nextLocal}
	b.nextLocal++
	b.sym.Locals[name] = sym
	return sym
}

func (b *funcBuilder) build(body *ast.Node) *ast.Symbol {
	b.sym.Node = body
	return b.sym
}

func ident(sym *ast.Symbol) *ast.Node {
	return &ast.Node{Kind: ast.Identifier, Entry: sym}
}

func number(v int64) *ast.Node {
	return &ast.Node{Kind: ast.Number, Data: v}
}

func str(index int) *ast.Node {
	return &ast.Node{Kind: ast.String, Data: index}
}

func binary(op string, left, right *ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.Expression, Data: op, Children: []*ast.Node{left, right}}
}

func wrap(value *ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.Expression, Children: []*ast.Node{value}}
}

func call(callee *ast.Symbol, args ...*ast.Node) *ast.Node {
	return &ast.Node{
		Kind: ast.Expression,
		Children: []*ast.Node{
			{Kind: ast.Identifier, Entry: callee},
			{Kind: ast.Block, Children: args},
		},
	}
}

func relation(op string, left, right *ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.Relation, Data: op, Children: []*ast.Node{left, right}}
}

func assign(target *ast.Symbol, value *ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.Assignment, Children: []*ast.Node{ident(target), value}}
}

func compound(kind ast.NodeKind, target *ast.Symbol, value *ast.Node) *ast.Node {
	return &ast.Node{Kind: kind, Children: []*ast.Node{ident(target), value}}
}

func ret(value *ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.Return, Children: []*ast.Node{value}}
}

func ifStmt(rel, then, els *ast.Node) *ast.Node {
	children := []*ast.Node{rel, then}
	if els != nil {
		children = append(children, els)
	}
	return &ast.Node{Kind: ast.If, Children: children}
}

func whileStmt(rel, body *ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.While, Children: []*ast.Node{rel, body}}
}

func continueStmt() *ast.Node {
	return &ast.Node{Kind: ast.Continue}
}

func printStmt(items ...*ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.Print, Children: items}
}

func block(stmts ...*ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.Block, Children: stmts}
}

func program(strings []string, funcs ...*ast.Symbol) *ast.Program {
	globals := make(map[string]*ast.Symbol, len(funcs))
	for _, fn := range funcs {
		globals[fn.Name] = fn
	}
	return &ast.Program{Globals: globals, Strings: strings}
}
