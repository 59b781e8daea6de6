package document

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Expression is the right hand side of an attribute.
type Expression interface {
	Tokens() hclwrite.Tokens
}

// String is a quoted string literal. Template sequences are escaped.
type String string

func (s String) Tokens() hclwrite.Tokens {
	return hclwrite.TokensForValue(cty.StringVal(string(s)))
}

// Number is an integer literal.
type Number int64

func (n Number) Tokens() hclwrite.Tokens {
	return hclwrite.TokensForValue(cty.NumberIntVal(int64(n)))
}

// Bool is a boolean literal.
type Bool bool

func (b Bool) Tokens() hclwrite.Tokens {
	return hclwrite.TokensForValue(cty.BoolVal(bool(b)))
}

// Ref is a reference to another object, written as a dotted path like "aws_vpc.main.id".
type Ref string

func (r Ref) Traversal() hcl.Traversal {
	parts := strings.Split(string(r), ".")
	traversal := hcl.Traversal{hcl.TraverseRoot{Name: parts[0]}}
	for _, part := range parts[1:] {
		traversal = append(traversal, hcl.TraverseAttr{Name: part})
	}
	return traversal
}

func (r Ref) Tokens() hclwrite.Tokens {
	return hclwrite.TokensForTraversal(r.Traversal())
}

// List is a tuple expression rendered on a single line.
type List []Expression

func Strings(values ...string) List {
	list := make(List, len(values))
	for i, value := range values {
		list[i] = String(value)
	}
	return list
}

func (l List) Tokens() hclwrite.Tokens {
	tokens := hclwrite.Tokens{{Type: hclsyntax.TokenOBrack, Bytes: []byte("[")}}
	for i, item := range l {
		if i > 0 {
			tokens = append(tokens, &hclwrite.Token{Type: hclsyntax.TokenComma, Bytes: []byte(",")})
		}
		tokens = append(tokens, item.Tokens()...)
	}
	return append(tokens, &hclwrite.Token{Type: hclsyntax.TokenCBrack, Bytes: []byte("]")})
}

// Field is one key of an Object.
type Field struct {
	Key   string
	Value Expression
}

// Object is an object constructor rendered one field per line, keeping field order.
type Object []Field

func (o Object) Tokens() hclwrite.Tokens {
	tokens := hclwrite.Tokens{
		{Type: hclsyntax.TokenOBrace, Bytes: []byte("{")},
		{Type: hclsyntax.TokenNewline, Bytes: []byte("\n")},
	}
	for _, field := range o {
		tokens = append(tokens,
			&hclwrite.Token{Type: hclsyntax.TokenIdent, Bytes: []byte(field.Key)},
			&hclwrite.Token{Type: hclsyntax.TokenEqual, Bytes: []byte("=")},
		)
		tokens = append(tokens, field.Value.Tokens()...)
		tokens = append(tokens, &hclwrite.Token{Type: hclsyntax.TokenNewline, Bytes: []byte("\n")})
	}
	return append(tokens, &hclwrite.Token{Type: hclsyntax.TokenCBrace, Bytes: []byte("}")})
}

// Heredoc is an indented heredoc string (<<-MARKER). Lines are kept verbatim.
type Heredoc struct {
	Marker string
	Lines  []string
	// Indent is prepended to every content line and to the closing marker.
	Indent string
}

func (h Heredoc) Tokens() hclwrite.Tokens {
	tokens := hclwrite.Tokens{
		{Type: hclsyntax.TokenOHeredoc, Bytes: []byte("<<-" + h.Marker + "\n")},
	}
	for _, line := range h.Lines {
		tokens = append(tokens, &hclwrite.Token{
			Type:  hclsyntax.TokenStringLit,
			Bytes: []byte(h.Indent + line + "\n"),
		})
	}
	return append(tokens, &hclwrite.Token{
		Type:  hclsyntax.TokenCHeredoc,
		Bytes: []byte(h.Indent + h.Marker),
	})
}

// Template is a quoted template mixing literal text (String) and interpolated references (Ref).
type Template []Expression

func (t Template) Tokens() hclwrite.Tokens {
	tokens := hclwrite.Tokens{{Type: hclsyntax.TokenOQuote, Bytes: []byte(`"`)}}
	for _, part := range t {
		switch p := part.(type) {
		case Ref:
			tokens = append(tokens, &hclwrite.Token{Type: hclsyntax.TokenTemplateInterp, Bytes: []byte("${")})
			tokens = append(tokens, p.Tokens()...)
			tokens = append(tokens, &hclwrite.Token{Type: hclsyntax.TokenTemplateSeqEnd, Bytes: []byte("}")})
		default:
			// literal text keeps the escaping of a quoted string, without its quotes
			for _, token := range part.Tokens() {
				if token.Type == hclsyntax.TokenQuotedLit {
					tokens = append(tokens, &hclwrite.Token{Type: token.Type, Bytes: token.Bytes})
				}
			}
		}
	}
	return append(tokens, &hclwrite.Token{Type: hclsyntax.TokenCQuote, Bytes: []byte(`"`)})
}
