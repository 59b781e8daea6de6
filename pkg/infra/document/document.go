// Package document models a Terraform configuration file as an ordered tree of typed nodes.
//
// A Document is built from blocks, attributes and expressions and serialized with Render,
// which produces canonically formatted HCL. Nodes are plain values: building a document has
// no side effects and the same tree always renders to the same bytes.
package document

// Document is an ordered list of top level nodes.
type Document struct {
	Nodes []Node
}

func New(nodes ...Node) *Document {
	return &Document{Nodes: nodes}
}

// Append adds nodes after the existing ones.
func (d *Document) Append(nodes ...Node) *Document {
	d.Nodes = append(d.Nodes, nodes...)
	return d
}

// Blocks returns the top level blocks in document order.
func (d *Document) Blocks() []*Block {
	var blocks []*Block
	for _, node := range d.Nodes {
		if block, ok := node.(*Block); ok {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// Node is an item that may appear at the top level of a document.
type Node interface {
	isNode()
}

// BodyItem is an item that may appear inside a block body.
type BodyItem interface {
	isBodyItem()
}

// Comment is a single line comment rendered as "# text".
type Comment string

func (Comment) isNode()     {}
func (Comment) isBodyItem() {}

// Blank is an empty line inside a block body. It separates attribute groups, which are aligned independently.
type Blank struct{}

func (Blank) isBodyItem() {}

// Block is a labelled HCL block such as `resource "aws_vpc" "main" { ... }`.
type Block struct {
	Type   string
	Labels []string
	Body   []BodyItem
}

func (*Block) isNode()     {}
func (*Block) isBodyItem() {}

func NewBlock(blockType string, labels []string, items ...BodyItem) *Block {
	return &Block{
		Type:   blockType,
		Labels: labels,
		Body:   items,
	}
}

// Resource creates a `resource "<type>" "<name>"` block.
func Resource(resourceType string, name string, items ...BodyItem) *Block {
	return NewBlock("resource", []string{resourceType, name}, items...)
}

// Data creates a `data "<type>" "<name>"` block.
func Data(dataType string, name string, items ...BodyItem) *Block {
	return NewBlock("data", []string{dataType, name}, items...)
}

// Output creates an `output "<name>"` block.
func Output(name string, items ...BodyItem) *Block {
	return NewBlock("output", []string{name}, items...)
}

// Nested creates an unlabelled block, like `ingress { ... }`.
func Nested(blockType string, items ...BodyItem) *Block {
	return NewBlock(blockType, nil, items...)
}

// Attribute returns the first attribute named name, or nil.
func (b *Block) Attribute(name string) *Attribute {
	for _, item := range b.Body {
		if attr, ok := item.(*Attribute); ok && attr.Name == name {
			return attr
		}
	}
	return nil
}

// Address is the Terraform address of the block, e.g. aws_vpc.main or data.aws_ami.amazon_linux_2.
func (b *Block) Address() string {
	switch {
	case b.Type == "resource" && len(b.Labels) == 2:
		return b.Labels[0] + "." + b.Labels[1]
	case b.Type == "data" && len(b.Labels) == 2:
		return "data." + b.Labels[0] + "." + b.Labels[1]
	case b.Type == "output" && len(b.Labels) == 1:
		return "output." + b.Labels[0]
	}
	return b.Type
}

// Attribute is a `name = expression` pair.
type Attribute struct {
	Name  string
	Value Expression
}

func (*Attribute) isBodyItem() {}

func Attr(name string, value Expression) *Attribute {
	return &Attribute{Name: name, Value: value}
}
