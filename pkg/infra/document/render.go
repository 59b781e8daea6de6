package document

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// Render serializes the document as formatted HCL. The result is parsed back before it is
// returned, so a document that cannot be read by Terraform is reported as an error.
func Render(doc *Document) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	var previous Node
	for _, node := range doc.Nodes {
		// one blank line between top level blocks, comments stick to the block below them
		if previous != nil {
			if _, isComment := previous.(Comment); !isComment {
				body.AppendNewline()
			}
		}

		if err := appendItem(body, node); err != nil {
			return nil, err
		}
		previous = node
	}

	src := hclwrite.Format(file.Bytes())
	if _, err := Parse(src, "main.tf"); err != nil {
		return nil, fmt.Errorf("rendered configuration is invalid: %w", err)
	}

	return src, nil
}

func appendItem(body *hclwrite.Body, item any) error {
	switch v := item.(type) {
	case Comment:
		body.AppendUnstructuredTokens(hclwrite.Tokens{
			{Type: hclsyntax.TokenComment, Bytes: []byte("# " + string(v) + "\n")},
		})
	case Blank:
		body.AppendNewline()
	case *Attribute:
		if v.Value == nil {
			return fmt.Errorf("attribute %q has no value", v.Name)
		}
		body.SetAttributeRaw(v.Name, v.Value.Tokens())
	case *Block:
		block := body.AppendNewBlock(v.Type, v.Labels)
		for _, child := range v.Body {
			if err := appendItem(block.Body(), child); err != nil {
				return fmt.Errorf("%s: %w", v.Address(), err)
			}
		}
	default:
		return fmt.Errorf("unsupported document node %T", item)
	}

	return nil
}

// Parse parses HCL source in native syntax and returns its body.
func Parse(src []byte, filename string) (*hclsyntax.Body, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected body type %T", file.Body)
	}

	return body, nil
}
