package generator

import (
	"github.com/mini-infragpt/infragpt/pkg/infra/document"
	"github.com/mini-infragpt/infragpt/pkg/infraspec"
)

const (
	// ProjectTag is applied to every resource as the Project tag.
	ProjectTag = "mini-infra-gpt"

	// WebInstanceType is the EC2 class of the web server. InfrastructureSpec.InstanceType is not used.
	WebInstanceType = "t3.micro"

	DatabaseInstanceClass = "db.t3.micro"
	DatabaseName          = "miniinfragpt"
	DatabaseUsername      = "admin"
	DatabaseStorageGb     = 20

	anyCidr = "0.0.0.0/0"
)

// DatabaseSettings are the engine specific values of the database block.
type DatabaseSettings struct {
	Port          int64
	EngineVersion string
}

// SettingsFor maps mysql to 3306/"8.0" and everything else to the postgres defaults 5432/"15".
func SettingsFor(databaseType infraspec.DatabaseType) DatabaseSettings {
	if databaseType == infraspec.DatabaseMySQL {
		return DatabaseSettings{Port: 3306, EngineVersion: "8.0"}
	}
	return DatabaseSettings{Port: 5432, EngineVersion: "15"}
}

func tags(name string, extra ...document.Field) *document.Attribute {
	fields := document.Object{
		{Key: "Name", Value: document.String(name)},
		{Key: "Project", Value: document.String(ProjectTag)},
	}
	return document.Attr("tags", append(fields, extra...))
}

func egressAll() *document.Block {
	return document.Nested("egress",
		document.Attr("from_port", document.Number(0)),
		document.Attr("to_port", document.Number(0)),
		document.Attr("protocol", document.String("-1")),
		document.Attr("cidr_blocks", document.Strings(anyCidr)),
	)
}

func publicIngress(description string, port int64) *document.Block {
	return document.Nested("ingress",
		document.Attr("description", document.String(description)),
		document.Attr("from_port", document.Number(port)),
		document.Attr("to_port", document.Number(port)),
		document.Attr("protocol", document.String("tcp")),
		document.Attr("cidr_blocks", document.Strings(anyCidr)),
	)
}

func output(name string, description string, value document.Expression) *document.Block {
	return document.Output(name,
		document.Attr("description", document.String(description)),
		document.Attr("value", value),
	)
}

// baseNodes are the provider, network, compute and output declarations present in every document.
func baseNodes(spec infraspec.InfrastructureSpec) []document.Node {
	return []document.Node{
		document.NewBlock("terraform", nil,
			document.Attr("required_version", document.String(">= 1.0")),
			document.Blank{},
			document.Nested("required_providers",
				document.Attr("aws", document.Object{
					{Key: "source", Value: document.String("hashicorp/aws")},
					{Key: "version", Value: document.String("~> 5.0")},
				}),
			),
		),

		document.NewBlock("provider", []string{"aws"},
			document.Attr("region", document.String(spec.Region)),
		),

		document.Comment("VPC"),
		document.Resource("aws_vpc", "main",
			document.Attr("cidr_block", document.String("10.0.0.0/16")),
			document.Attr("enable_dns_hostnames", document.Bool(true)),
			document.Attr("enable_dns_support", document.Bool(true)),
			document.Blank{},
			tags("mini-infra-gpt-vpc"),
		),

		document.Comment("Public Subnet (AZ auto-selected)"),
		document.Resource("aws_subnet", "public",
			document.Attr("vpc_id", document.Ref("aws_vpc.main.id")),
			document.Attr("cidr_block", document.String("10.0.1.0/24")),
			document.Attr("map_public_ip_on_launch", document.Bool(true)),
			document.Blank{},
			tags("public-subnet"),
		),

		document.Comment("Internet Gateway"),
		document.Resource("aws_internet_gateway", "igw",
			document.Attr("vpc_id", document.Ref("aws_vpc.main.id")),
			document.Blank{},
			tags("mini-infra-gpt-igw"),
		),

		document.Comment("Route Table"),
		document.Resource("aws_route_table", "public",
			document.Attr("vpc_id", document.Ref("aws_vpc.main.id")),
			document.Blank{},
			document.Nested("route",
				document.Attr("cidr_block", document.String(anyCidr)),
				document.Attr("gateway_id", document.Ref("aws_internet_gateway.igw.id")),
			),
			document.Blank{},
			tags("public-route-table"),
		),

		document.Comment("Route Table Association"),
		document.Resource("aws_route_table_association", "public",
			document.Attr("subnet_id", document.Ref("aws_subnet.public.id")),
			document.Attr("route_table_id", document.Ref("aws_route_table.public.id")),
		),

		document.Comment("Security Group"),
		document.Resource("aws_security_group", "web",
			document.Attr("name", document.String("mini-infra-gpt-web-sg")),
			document.Attr("description", document.String("Allow HTTP and SSH")),
			document.Attr("vpc_id", document.Ref("aws_vpc.main.id")),
			document.Blank{},
			publicIngress("HTTP", 80),
			document.Blank{},
			publicIngress("SSH", 22),
			document.Blank{},
			egressAll(),
			document.Blank{},
			tags("web-security-group"),
		),

		document.Comment("Get latest Amazon Linux 2 AMI"),
		document.Data("aws_ami", "amazon_linux_2",
			document.Attr("most_recent", document.Bool(true)),
			document.Attr("owners", document.Strings("amazon")),
			document.Blank{},
			document.Nested("filter",
				document.Attr("name", document.String("name")),
				document.Attr("values", document.Strings("amzn2-ami-hvm-*-x86_64-gp2")),
			),
			document.Blank{},
			document.Nested("filter",
				document.Attr("name", document.String("virtualization-type")),
				document.Attr("values", document.Strings("hvm")),
			),
		),

		document.Comment("EC2 Instance"),
		document.Resource("aws_instance", "web",
			document.Attr("ami", document.Ref("data.aws_ami.amazon_linux_2.id")),
			document.Attr("instance_type", document.String(WebInstanceType)),
			document.Attr("subnet_id", document.Ref("aws_subnet.public.id")),
			document.Blank{},
			document.Attr("vpc_security_group_ids", document.List{document.Ref("aws_security_group.web.id")}),
			document.Blank{},
			document.Attr("user_data", document.Heredoc{
				Marker: "EOF",
				Indent: "              ",
				Lines: []string{
					"#!/bin/bash",
					"yum update -y",
					"yum install -y python3 python3-pip",
					"pip3 install flask",
				},
			}),
			document.Blank{},
			tags("mini-infra-gpt-server",
				document.Field{Key: "Type", Value: document.String(string(spec.AppType))},
			),
		),

		document.Comment("Outputs"),
		output("instance_id", "EC2 instance ID", document.Ref("aws_instance.web.id")),
		output("instance_public_ip", "Public IP address", document.Ref("aws_instance.web.public_ip")),
		output("instance_public_dns", "Public DNS name", document.Ref("aws_instance.web.public_dns")),
		output("application_url", "Application URL", document.Template{
			document.String("http://"),
			document.Ref("aws_instance.web.public_ip"),
		}),
	}
}

// databaseNodes are the private subnet, subnet group, security group, instance and outputs of the database.
func databaseNodes(spec infraspec.InfrastructureSpec, password string) []document.Node {
	settings := SettingsFor(spec.DatabaseType)

	return []document.Node{
		document.Comment("Private Subnet for Database"),
		document.Resource("aws_subnet", "private",
			document.Attr("vpc_id", document.Ref("aws_vpc.main.id")),
			document.Attr("cidr_block", document.String("10.0.2.0/24")),
			document.Blank{},
			tags("private-subnet-db"),
		),

		document.Comment("DB Subnet Group"),
		document.Resource("aws_db_subnet_group", "main",
			document.Attr("name", document.String("mini-infra-gpt-db-subnet")),
			document.Attr("subnet_ids", document.List{
				document.Ref("aws_subnet.public.id"),
				document.Ref("aws_subnet.private.id"),
			}),
			document.Blank{},
			tags("mini-infra-gpt-db-subnet-group"),
		),

		document.Comment("Database Security Group"),
		document.Resource("aws_security_group", "db",
			document.Attr("name", document.String("mini-infra-gpt-db-sg")),
			document.Attr("description", document.String("Allow database traffic from web server")),
			document.Attr("vpc_id", document.Ref("aws_vpc.main.id")),
			document.Blank{},
			document.Nested("ingress",
				document.Attr("from_port", document.Number(settings.Port)),
				document.Attr("to_port", document.Number(settings.Port)),
				document.Attr("protocol", document.String("tcp")),
				document.Attr("security_groups", document.List{document.Ref("aws_security_group.web.id")}),
			),
			document.Blank{},
			egressAll(),
			document.Blank{},
			tags("database-security-group"),
		),

		document.Comment("RDS Database"),
		document.Resource("aws_db_instance", "main",
			document.Attr("identifier", document.String("mini-infra-gpt-db")),
			document.Attr("engine", document.String(string(spec.DatabaseType))),
			document.Attr("engine_version", document.String(settings.EngineVersion)),
			document.Attr("instance_class", document.String(DatabaseInstanceClass)),
			document.Attr("allocated_storage", document.Number(DatabaseStorageGb)),
			document.Blank{},
			document.Attr("db_name", document.String(DatabaseName)),
			document.Attr("username", document.String(DatabaseUsername)),
			document.Attr("password", document.String(password)),
			document.Blank{},
			document.Attr("db_subnet_group_name", document.Ref("aws_db_subnet_group.main.name")),
			document.Attr("vpc_security_group_ids", document.List{document.Ref("aws_security_group.db.id")}),
			document.Blank{},
			document.Attr("skip_final_snapshot", document.Bool(true)),
			document.Attr("publicly_accessible", document.Bool(false)),
			document.Blank{},
			tags("mini-infra-gpt-database"),
		),

		output("database_endpoint", "Database endpoint", document.Ref("aws_db_instance.main.endpoint")),
		output("database_name", "Database name", document.Ref("aws_db_instance.main.db_name")),
	}
}
