package ir

import (
	"fmt"
	"strings"
)

// mathPrefix starts the names of stdlib.Math imports.
const mathPrefix = "Math_"

// jsReserved lists words that cannot name a JavaScript binding, together with
// the names the module wrapper binds itself.
var jsReserved = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {}, "continue": {},
	"debugger": {}, "default": {}, "delete": {}, "do": {}, "else": {}, "enum": {},
	"export": {}, "extends": {}, "false": {}, "finally": {}, "for": {}, "function": {},
	"if": {}, "implements": {}, "import": {}, "in": {}, "instanceof": {}, "interface": {},
	"let": {}, "new": {}, "null": {}, "package": {}, "private": {}, "protected": {},
	"public": {}, "return": {}, "static": {}, "super": {}, "switch": {}, "this": {},
	"throw": {}, "true": {}, "try": {}, "typeof": {}, "var": {}, "void": {},
	"while": {}, "with": {}, "yield": {}, "await": {},
	"arguments": {}, "eval": {}, "undefined": {}, "NaN": {}, "Infinity": {},

	// module wrapper bindings
	"stdlib": {}, "env": {}, "stack": {}, "gl": {}, "Math": {},
	"Int32Array": {}, "Float32Array": {}, "ArrayBuffer": {},
}

func escapeReserved(name string) string {
	if name == "" {
		return "_unnamed"
	}
	if _, ok := jsReserved[name]; ok {
		return "_" + name
	}
	if strings.HasPrefix(name, mathPrefix) {
		return "_" + name
	}
	return name
}

// namer hands out unique JavaScript names.
type namer struct {
	used    map[string]struct{}
	counter uint32
}

func newNamer() *namer {
	return &namer{used: make(map[string]struct{})}
}

// fork returns a namer that starts with every name n has handed out.
func (n *namer) fork() *namer {
	c := &namer{used: make(map[string]struct{}, len(n.used))}
	for k := range n.used {
		c.used[k] = struct{}{}
	}
	return c
}

// call returns base, escaped, or base with a numeric suffix if taken.
func (n *namer) call(base string) string {
	escaped := escapeReserved(base)

	if _, used := n.used[escaped]; !used {
		n.used[escaped] = struct{}{}
		return escaped
	}

	for {
		n.counter++
		candidate := fmt.Sprintf("%s_%d", escaped, n.counter)
		if _, used := n.used[candidate]; !used {
			n.used[candidate] = struct{}{}
			return candidate
		}
	}
}
