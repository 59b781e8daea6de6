package document

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestRender(t *testing.T) {
	doc := New(
		Comment("VPC"),
		Resource("aws_vpc", "main",
			Attr("cidr_block", String("10.0.0.0/16")),
			Attr("enable_dns_hostnames", Bool(true)),
			Blank{},
			Attr("tags", Object{
				{Key: "Name", Value: String("vpc")},
			}),
		),
		Output("id",
			Attr("value", Ref("aws_vpc.main.id")),
		),
	)

	src, err := Render(doc)
	require.NoError(t, err)

	expected := `# VPC
resource "aws_vpc" "main" {
  cidr_block           = "10.0.0.0/16"
  enable_dns_hostnames = true

  tags = {
    Name = "vpc"
  }
}

output "id" {
  value = aws_vpc.main.id
}
`
	require.Equal(t, expected, string(src))
}

func TestRenderIsDeterministic(t *testing.T) {
	build := func() *Document {
		return New(
			Resource("aws_security_group", "web",
				Attr("vpc_id", Ref("aws_vpc.main.id")),
				Nested("ingress",
					Attr("from_port", Number(80)),
					Attr("cidr_blocks", Strings("0.0.0.0/0")),
				),
			),
		)
	}

	first, err := Render(build())
	require.NoError(t, err)
	second, err := Render(build())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRenderExpressions(t *testing.T) {
	doc := New(
		Resource("aws_instance", "web",
			Attr("escaped", String("${not_a_ref}")),
			Attr("count", Number(20)),
			Attr("security_groups", List{Ref("aws_security_group.web.id")}),
			Attr("owners", Strings("amazon", "self")),
			Attr("url", Template{String("http://"), Ref("aws_instance.web.public_ip")}),
			Attr("user_data", Heredoc{
				Marker: "EOF",
				Indent: "    ",
				Lines:  []string{"#!/bin/bash", "echo ready"},
			}),
		),
	)

	src, err := Render(doc)
	require.NoError(t, err)

	body, err := Parse(src, "main.tf")
	require.NoError(t, err)
	require.Len(t, body.Blocks, 1)

	attrs := body.Blocks[0].Body.Attributes

	escaped, diags := attrs["escaped"].Expr.Value(nil)
	require.False(t, diags.HasErrors())
	require.Equal(t, cty.StringVal("${not_a_ref}"), escaped)

	count, diags := attrs["count"].Expr.Value(nil)
	require.False(t, diags.HasErrors())
	require.True(t, count.Equals(cty.NumberIntVal(20)).True())

	owners, diags := attrs["owners"].Expr.Value(nil)
	require.False(t, diags.HasErrors())
	require.Equal(t, 2, owners.LengthInt())

	traversals := attrs["url"].Expr.Variables()
	require.Len(t, traversals, 1)
	require.Equal(t, "aws_instance", traversals[0].RootName())

	require.Contains(t, string(src), `url             = "http://${aws_instance.web.public_ip}"`)
	require.Contains(t, string(src), "<<-EOF\n    #!/bin/bash\n    echo ready\n    EOF\n")
}

func TestRenderRejectsMissingValue(t *testing.T) {
	_, err := Render(New(Resource("aws_vpc", "main", &Attribute{Name: "cidr_block"})))
	require.ErrorContains(t, err, `aws_vpc.main: attribute "cidr_block" has no value`)
}

func TestBlockHelpers(t *testing.T) {
	vpc := Resource("aws_vpc", "main", Attr("cidr_block", String("10.0.0.0/16")))
	ami := Data("aws_ami", "amazon_linux_2")
	out := Output("instance_id")

	require.Equal(t, "aws_vpc.main", vpc.Address())
	require.Equal(t, "data.aws_ami.amazon_linux_2", ami.Address())
	require.Equal(t, "output.instance_id", out.Address())
	require.Equal(t, String("10.0.0.0/16"), vpc.Attribute("cidr_block").Value)
	require.Nil(t, vpc.Attribute("missing"))

	doc := New(Comment("x"), vpc).Append(ami, out)
	require.Equal(t, []*Block{vpc, ami, out}, doc.Blocks())
}
