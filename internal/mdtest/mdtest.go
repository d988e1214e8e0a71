// Package mdtest extracts end-to-end compiler test cases from Markdown.
//
// A test case starts at a heading of the form "Test: name" and holds one
// input fence followed by one or more assertion fences:
//
//	## Test: empty main
//
//	```glsl
//	void main() {}
//	```
//
//	```js-contains
//	function main() {
//	}
//	```
//
// Prose and unlabeled code blocks between fences are ignored, so the files
// double as documentation of the lowering.
package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType is the language of a test's input fence.
type InputType string

const (
	// InputProgram is a complete translation unit with a main function.
	InputProgram InputType = "glsl"

	// InputFragment is compiled with the entry point checks disabled.
	InputFragment InputType = "glsl-fragment"
)

// AssertionType is the language of an assertion fence.
type AssertionType string

const (
	// AssertOutput requires the compiled module to match exactly.
	AssertOutput AssertionType = "js"

	// AssertContains requires the fence lines to appear, in order, among
	// the output lines. Leading and trailing whitespace is ignored.
	AssertContains AssertionType = "js-contains"

	// AssertNotContains requires no output line to contain any fence line.
	AssertNotContains AssertionType = "js-not-contains"

	// AssertError requires compilation to fail. The first line names the
	// error kind; an optional second line must occur in the message.
	AssertError AssertionType = "compile-error"
)

// Assertion is one assertion fence.
type Assertion struct {
	Type    AssertionType
	Content string
	Line    int
}

// Case is a test case extracted from Markdown.
type Case struct {
	Name       string
	Input      string
	InputType  InputType
	Assertions []Assertion
}

// Lines returns the assertion content split into lines.
func (a Assertion) Lines() []string {
	if a.Content == "" {
		return nil
	}
	return strings.Split(a.Content, "\n")
}

// Extract parses a Markdown document and returns its test cases in order.
func Extract(markdown string) ([]Case, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var current *Case

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := validate(current); err != nil {
					return ast.WalkStop, err
				}
				cases = append(cases, *current)
			}
			current = &Case{Name: strings.TrimPrefix(heading, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			line := lineNumber(n, source)
			if language == "" {
				return ast.WalkContinue, nil
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of a test case", line, language)
			}
			content := strings.TrimRight(blockContent(n, source), "\n")

			switch {
			case isInput(language):
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences in test %q", line, current.Name)
				}
				current.Input = content
				current.InputType = InputType(language)
			case isAssertion(language):
				if current.Input == "" {
					return ast.WalkStop, fmt.Errorf("line %d: assertion before input in test %q", line, current.Name)
				}
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Content: content,
					Line:    line,
				})
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language %q in test %q", line, language, current.Name)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("mdtest: %w", err)
	}

	if current != nil {
		if err := validate(current); err != nil {
			return nil, fmt.Errorf("mdtest: %w", err)
		}
		cases = append(cases, *current)
	}
	return cases, nil
}

func isInput(language string) bool {
	return language == string(InputProgram) || language == string(InputFragment)
}

func isAssertion(language string) bool {
	switch AssertionType(language) {
	case AssertOutput, AssertContains, AssertNotContains, AssertError:
		return true
	}
	return false
}

func validate(c *Case) error {
	if c.Input == "" {
		return fmt.Errorf("test %q has no input fence", c.Name)
	}
	if len(c.Assertions) == 0 {
		return fmt.Errorf("test %q has no assertion fences", c.Name)
	}
	return nil
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineNumber returns the 1-based line of the block's first content line.
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}
