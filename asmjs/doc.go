// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package asmjs renders a lowered program as asm.js source.
//
// The input is the tree produced by the ir package: scalar arithmetic with
// explicit coercions, composite values held in the $$STACK_I and $$STACK_F
// views, and the module wrapper built by ir.Program.Module. The writer only
// prints; every typing decision has already been made.
//
// # Basic Usage
//
//	source, err := asmjs.Compile(program, asmjs.DefaultOptions())
//
// # Output Shape
//
//	var gl = function (stdlib, env, stack) {
//	    "use asm";
//	    var $$STACKTOP = 0;
//	    var $$STACK_I = new stdlib.Int32Array(stack);
//	    var $$STACK_F = new stdlib.Float32Array(stack);
//	    function main() {
//	    }
//	    return { main: main };
//	}({ Math: Math, Int32Array: Int32Array, Float32Array: Float32Array }, {}, new ArrayBuffer(4096));
//
// Float literals always carry a decimal point so that asm.js reads them as
// doubles, and booleans print as 0 or 1.
package asmjs
