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
	"io"
)

// Emitter is a line-oriented text sink for AT&T-syntax assembly. All
// generated output is routed through it; it distinguishes directives,
// labels, and instructions by their indentation, matching the textual
// conventions a GNU assembler expects.
//
// Emitter never panics on a write failure: it records the first error
// and silently no-ops afterward, so callers can emit an entire function
// body without threading an error return through every call, then check
// Err once at the end — the same sticky-error shape the teacher uses for
// its builder passes over generated text.
type Emitter struct {
	w   io.Writer
	err error
}

// NewEmitter wraps w as an assembly line sink.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Err returns the first I/O error encountered while emitting, if any.
func (e *Emitter) Err() error {
	return e.err
}

func (e *Emitter) writeLine(line string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, line)
}

// Directive emits a top-level assembler directive, e.g. ".section .text".
func (e *Emitter) Directive(text string) {
	e.writeLine(text)
}

// Label emits a label line, e.g. "_func_fib:".
func (e *Emitter) Label(name string) {
	e.writeLine(name + ":")
}

// Inst emits one tab-indented instruction, formatted like fmt.Sprintf.
func (e *Emitter) Inst(format string, args ...any) {
	e.writeLine("\t" + fmt.Sprintf(format, args...))
}
