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

import "fmt"

// GenError reports one of the generator's fatal conditions: a malformed
// call, an argument-count mismatch, an unsupported symbol kind in value
// position, a misplaced return/continue, or an unknown relation
// operator. Unlike the source this is rewritten from, the generator
// never calls os.Exit itself; it returns a GenError and leaves the
// decision of how to report and terminate to the caller (see
// design note "Fatal-on-bad-AST").
type GenError struct {
	Func string // enclosing function name, if any
	msg  string
}

func (e *GenError) Error() string {
	if e.Func == "" {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.Func, e.msg)
}

func genErrorf(fn string, format string, args ...any) *GenError {
	return &GenError{Func: fn, msg: fmt.Sprintf(format, args...)}
}
