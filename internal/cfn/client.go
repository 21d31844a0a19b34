// File: internal/cfn/client.go
// Brief: CloudFormation client construction from the shared AWS config chain.

package cfn

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/pkg/errors"
)

type Options struct {
	Profile string
	Region  string
}

// NewClient builds a CloudFormation client from the default credential
// chain. Profile and region are overrides; empty values defer to the
// environment and shared config files.
func NewClient(ctx context.Context, opts Options) (*cloudformation.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}
	return cloudformation.NewFromConfig(cfg), nil
}
