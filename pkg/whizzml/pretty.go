package whizzml

import (
	"strings"
)

// maxLineWidth is the target width for pretty-printed statements.
const maxLineWidth = 78

// PrettyPrint reformats raw WhizzML source: statements that fit on one
// line stay on one line, longer forms break with aligned arguments.
// Formatting only touches whitespace, so the function is idempotent and
// semantics-preserving.
func PrettyPrint(src string) string {
	nodes, ok := parseForms(src)
	if !ok {
		// Unbalanced input passes through untouched.
		return src
	}

	var lines []string
	for _, n := range nodes {
		if n.comment {
			lines = append(lines, n.atom)
			continue
		}
		lines = append(lines, layout(n, 0))
	}
	return strings.Join(lines, "\n")
}

type sexpr struct {
	atom     string // leaf token; a full line when comment is set
	comment  bool
	open     byte // '(', '[' or '{' for lists
	children []*sexpr
}

func (n *sexpr) leaf() bool { return n.open == 0 }

var closers = map[byte]byte{'(': ')', '[': ']', '{': '}'}

// parseForms tokenizes and parses a sequence of top-level forms. Returns
// false when delimiters do not balance.
func parseForms(src string) ([]*sexpr, bool) {
	var top []*sexpr
	var stack []*sexpr

	push := func(n *sexpr) {
		if len(stack) == 0 {
			top = append(top, n)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
		}
	}

	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == ';':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src) - i
			}
			push(&sexpr{atom: strings.TrimRight(src[i:i+end], " \t"), comment: true})
			i += end
		case c == '(' || c == '[' || c == '{':
			node := &sexpr{open: c}
			push(node)
			stack = append(stack, node)
			i++
		case c == ')' || c == ']' || c == '}':
			if len(stack) == 0 || closers[stack[len(stack)-1].open] != c {
				return nil, false
			}
			stack = stack[:len(stack)-1]
			i++
		case c == '"':
			j := i + 1
			for j < len(src) {
				if src[j] == '\\' {
					j += 2
					continue
				}
				if src[j] == '"' {
					break
				}
				j++
			}
			if j >= len(src) {
				return nil, false
			}
			push(&sexpr{atom: src[i : j+1]})
			i = j + 1
		default:
			j := i
			for j < len(src) && !strings.ContainsRune(" \t\n\r()[]{};\"", rune(src[j])) {
				j++
			}
			push(&sexpr{atom: src[i:j]})
			i = j
		}
	}

	return top, len(stack) == 0
}

// flat renders a form on a single line.
func flat(n *sexpr) string {
	if n.leaf() {
		return n.atom
	}
	parts := make([]string, len(n.children))
	for i, child := range n.children {
		parts[i] = flat(child)
	}
	return string(n.open) + strings.Join(parts, " ") + string(closers[n.open])
}

// layout renders a form starting at the given column, breaking lines
// that would exceed the target width.
func layout(n *sexpr, indent int) string {
	if n.leaf() {
		return n.atom
	}

	oneLine := flat(n)
	if indent+len(oneLine) <= maxLineWidth {
		return oneLine
	}

	if n.open == '{' {
		return layoutMap(n, indent)
	}

	// Call form: keep the operator (and a leaf name after it) on the
	// opening line, then one argument per line.
	var b strings.Builder
	b.WriteByte(n.open)
	rest := n.children
	if len(rest) > 0 {
		b.WriteString(flat(rest[0]))
		rest = rest[1:]
	}
	if len(rest) > 0 && rest[0].leaf() {
		b.WriteByte(' ')
		b.WriteString(rest[0].atom)
		rest = rest[1:]
	}
	child := indent + 2
	for _, c := range rest {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", child))
		b.WriteString(layout(c, child))
	}
	b.WriteByte(closers[n.open])
	return b.String()
}

// layoutMap renders a map literal with one key/value pair per line,
// aligned under the first pair.
func layoutMap(n *sexpr, indent int) string {
	col := indent + 1
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i+1 < len(n.children); i += 2 {
		if i > 0 {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", col))
		}
		key := flat(n.children[i])
		b.WriteString(key)
		b.WriteByte(' ')
		b.WriteString(layout(n.children[i+1], col+len(key)+1))
	}
	// A stray trailing element (malformed pair list) still prints.
	if len(n.children)%2 == 1 {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", col))
		b.WriteString(flat(n.children[len(n.children)-1]))
	}
	b.WriteByte('}')
	return b.String()
}
