// Package awsclient builds configured AWS SDK clients for the toolkit.
//
// Every client carries a product user agent of the form
// "<ProductName>/<version> <platformName>/<platformVersion>" and honors
// per-service endpoint overrides from settings.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmw "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/config"
	smithymw "github.com/aws/smithy-go/middleware"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
	"github.com/ss22219/aws-toolkit-vscode/settings"
	"github.com/ss22219/aws-toolkit-vscode/version"
)

// Options configures client construction.
type Options struct {
	// Region selects the AWS region. Falls back to the settings region and
	// then the SDK default chain when empty.
	Region string

	// UserAgent overrides the default product user agent. When empty the
	// standard "<ProductName>/<version> <platformName>/<platformVersion>"
	// value is used.
	UserAgent string

	// Settings supplies endpoint overrides. May be nil.
	Settings *settings.Settings

	// Product identifies the toolkit for the user agent. May be nil.
	Product *version.Info
}

// Client wraps a resolved aws.Config together with the toolkit options used
// to build it.
type Client struct {
	cfg      aws.Config
	settings *settings.Settings
}

// New resolves an aws.Config using the default credential chain and applies
// the toolkit user agent.
func New(ctx context.Context, opts Options) (*Client, error) {
	region := opts.Region
	if region == "" && opts.Settings != nil {
		region = opts.Settings.Region
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = BuildUserAgent(opts.Product)
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithAPIOptions([]func(*smithymw.Stack) error{
			awsmw.AddUserAgentKey(userAgent),
		}),
	}
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logutil.Debug("resolved aws config", "region", cfg.Region, "userAgent", userAgent)

	return &Client{cfg: cfg, settings: opts.Settings}, nil
}

// Config returns the resolved aws.Config.
func (c *Client) Config() aws.Config {
	return c.cfg
}

// Region returns the resolved region.
func (c *Client) Region() string {
	return c.cfg.Region
}

// Endpoint returns the endpoint override configured for the given service
// identifier, or "" when none is set.
func (c *Client) Endpoint(service string) string {
	return c.settings.Endpoint(service)
}

// Credentials retrieves the resolved credentials. The returned value is
// opaque to callers; it exists so collaborators can verify that a credential
// source is available before starting long workflows.
func (c *Client) Credentials(ctx context.Context) (aws.Credentials, error) {
	creds, err := c.cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return aws.Credentials{}, fmt.Errorf("failed to retrieve credentials: %w", err)
	}
	return creds, nil
}
