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

package fixtures

import "github.com/nilsson-lang/vslgen/ast"

// Scenario bundles a fixture with the argv it is meant to be run with
// and the expected process exit status, for scenarios where that is
// meaningful.
type Scenario struct {
	Name     string
	Program  *ast.Program
	Argv     []string
	ExitCode int
}

// Identity builds "func f(n) { return n }", run with argv
// ["prog", "42"]: stdout empty, exit status 42.
func Identity() Scenario {
	fb := newFunc("f", 0)
	n := fb.param("n")
	f := fb.build(block(ret(ident(n))))
	return Scenario{
		Name:     "identity",
		Program:  program(nil, f),
		Argv:     []string{"prog", "42"},
		ExitCode: 42,
	}
}

// Bottles builds a zero-argument main that prints a countdown while
// decrementing a local variable, exercising While, Print, and compound
// assignment together:
//
//	func main() {
//	    x = 10
//	    while (x > 0) {
//	        print "bottles: ", x
//	        x -= 1
//	    }
//	    return 0
//	}
func Bottles() Scenario {
	fb := newFunc("main", 0)
	x := fb.local("x")
	body := block(
		assign(x, number(10)),
		whileStmt(
			relation(">", ident(x), number(0)),
			block(
				printStmt(str(0), ident(x)),
				compound(ast.SubAssign, x, number(1)),
			),
		),
		ret(number(0)),
	)
	main := fb.build(body)
	return Scenario{
		Name:     "bottles",
		Program:  program([]string{`"bottles: "`}, main),
		Argv:     []string{"prog"},
		ExitCode: 0,
	}
}

// ArgumentMismatch builds a two-parameter entry function, meant to be
// invoked with only one CLI argument: stdout is exactly
// "Wrong number of arguments\n" via puts, exit status 0.
func ArgumentMismatch() Scenario {
	fb := newFunc("main", 0)
	a := fb.param("a")
	b := fb.param("b")
	main := fb.build(block(ret(binary("+", ident(a), ident(b)))))
	return Scenario{
		Name:     "argument_mismatch",
		Program:  program(nil, main),
		Argv:     []string{"prog", "1"},
		ExitCode: 0,
	}
}

// DeepArithmetic builds:
//
//	func f(a,b,c,d,e,f,g,h) {
//	    return (a+b)*(c-d) + (e|f) ^ (g&h)
//	}
//
// with argv ["prog","1",...,"8"]; tests the register/stack parameter
// crossover (params g, h are stack-resident) and full operator coverage.
func DeepArithmetic() Scenario {
	fb := newFunc("f", 0)
	a := fb.param("a")
	b := fb.param("b")
	c := fb.param("c")
	d := fb.param("d")
	e := fb.param("e")
	g := fb.param("f")
	h := fb.param("g")
	i := fb.param("h")

	expr := binary("^",
		binary("+",
			binary("*",
				binary("+", ident(a), ident(b)),
				binary("-", ident(c), ident(d)),
			),
			binary("|", ident(e), ident(g)),
		),
		binary("&", ident(h), ident(i)),
	)
	f := fb.build(block(ret(expr)))
	return Scenario{
		Name:     "deep_arithmetic",
		Program:  program(nil, f),
		Argv:     []string{"prog", "1", "2", "3", "4", "5", "6", "7", "8"},
		ExitCode: int(((1+2)*(3-4) + (5 | 6) ^ (7 & 8)) & 0xFF),
	}
}

// NestedControl builds a doubly-nested while loop where the inner loop's
// continue must target the inner WCHECK label, not the outer one:
//
//	func main() {
//	    i = 0
//	    while (i < 3) {
//	        j = 0
//	        while (j < 3) {
//	            j += 1
//	            if (j = 1) { continue }
//	        }
//	        i += 1
//	    }
//	    return 0
//	}
func NestedControl() Scenario {
	fb := newFunc("main", 0)
	i := fb.local("i")
	j := fb.local("j")
	inner := whileStmt(
		relation("<", ident(j), number(3)),
		block(
			compound(ast.AddAssign, j, number(1)),
			ifStmt(relation("=", ident(j), number(1)), block(continueStmt()), nil),
		),
	)
	outer := whileStmt(
		relation("<", ident(i), number(3)),
		block(
			assign(j, number(0)),
			inner,
			compound(ast.AddAssign, i, number(1)),
		),
	)
	main := fb.build(block(assign(i, number(0)), outer, ret(number(0))))
	return Scenario{
		Name:     "nested_control",
		Program:  program(nil, main),
		Argv:     []string{"prog"},
		ExitCode: 0,
	}
}

// PrintMix builds:
//
//	func main(n) { print "hello", n, n+1; return 0 }
//
// which, run with n=3, prints "hello 3 4 \n".
func PrintMix() Scenario {
	fb := newFunc("main", 0)
	n := fb.param("n")
	main := fb.build(block(
		printStmt(str(0), ident(n), binary("+", ident(n), number(1))),
		ret(number(0)),
	))
	return Scenario{
		Name:     "print_mix",
		Program:  program([]string{`"hello"`}, main),
		Argv:     []string{"prog", "3"},
		ExitCode: 0,
	}
}

// All returns every conformance scenario, in the order spec'd.
func All() []Scenario {
	return []Scenario{
		Identity(),
		Bottles(),
		ArgumentMismatch(),
		DeepArithmetic(),
		NestedControl(),
		PrintMix(),
	}
}
