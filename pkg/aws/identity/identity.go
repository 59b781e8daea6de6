// Package identity answers "which AWS account are these credentials for" before anything is provisioned.
package identity

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/mini-infragpt/infragpt/pkg/tools"
	"github.com/mini-infragpt/infragpt/pkg/tools/awscli"
)

const (
	SourceCli = "cli"
	SourceSdk = "sdk"
)

type Identity struct {
	Account string `json:"account"`
	Arn     string `json:"arn"`
	UserId  string `json:"userId"`
}

type Checker interface {
	CallerIdentity(ctx context.Context) (Identity, error)
}

// CliChecker asks the aws command line tool.
type CliChecker struct {
	cli awscli.AwsCli
}

func NewCliChecker(cli awscli.AwsCli) *CliChecker {
	return &CliChecker{cli: cli}
}

func (c *CliChecker) CallerIdentity(ctx context.Context) (Identity, error) {
	if err := tools.EnsureInstalled(ctx, c.cli); err != nil {
		return Identity{}, err
	}

	res, err := c.cli.GetCallerIdentity(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("checking aws credentials: %w", err)
	}

	return Identity{Account: res.Account, Arn: res.Arn, UserId: res.UserId}, nil
}

// STSAPI is the subset of the STS client used here.
type STSAPI interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// SdkChecker calls STS directly with the AWS SDK.
type SdkChecker struct {
	api STSAPI
}

func NewSdkChecker(api STSAPI) *SdkChecker {
	return &SdkChecker{api: api}
}

func NewSdkCheckerFromConfig(cfg aws.Config) *SdkChecker {
	return NewSdkChecker(sts.NewFromConfig(cfg))
}

func (c *SdkChecker) CallerIdentity(ctx context.Context) (Identity, error) {
	out, err := c.api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, fmt.Errorf("checking aws credentials: %w", err)
	}

	return Identity{
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
		UserId:  aws.ToString(out.UserId),
	}, nil
}
