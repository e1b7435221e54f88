package schemas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsschemas "github.com/aws/aws-sdk-go-v2/service/schemas"
	schematypes "github.com/aws/aws-sdk-go-v2/service/schemas/types"
	"github.com/sony/gobreaker"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
	"github.com/ss22219/aws-toolkit-vscode/retry"
)

// Default pacing for code generation polling. Binding generation on the
// service side usually completes within a few seconds.
const (
	defaultPollInterval = 2 * time.Second
	defaultPollTimeout  = 60 * time.Second
)

// DownloadRequest identifies a schema code binding and where to place the
// extracted sources.
type DownloadRequest struct {
	RegistryName         string
	SchemaName           string
	SchemaVersion        string
	Language             string
	DestinationDirectory string
}

// Validate checks that all fields required to address a code binding are set.
func (r DownloadRequest) Validate() error {
	switch {
	case r.RegistryName == "":
		return errors.New("schema download: registry name is required")
	case r.SchemaName == "":
		return errors.New("schema download: schema name is required")
	case r.SchemaVersion == "":
		return errors.New("schema download: schema version is required")
	case r.Language == "":
		return errors.New("schema download: language is required")
	case r.DestinationDirectory == "":
		return errors.New("schema download: destination directory is required")
	}
	return nil
}

// CodeDownloader fetches generated code bindings for a schema.
type CodeDownloader interface {
	DownloadCode(ctx context.Context, request DownloadRequest) error
}

// BindingAPI is the subset of the EventBridge Schemas API the downloader
// uses. *schemas.Client satisfies it.
type BindingAPI interface {
	PutCodeBinding(ctx context.Context, params *awsschemas.PutCodeBindingInput, optFns ...func(*awsschemas.Options)) (*awsschemas.PutCodeBindingOutput, error)
	DescribeCodeBinding(ctx context.Context, params *awsschemas.DescribeCodeBindingInput, optFns ...func(*awsschemas.Options)) (*awsschemas.DescribeCodeBindingOutput, error)
	GetCodeBindingSource(ctx context.Context, params *awsschemas.GetCodeBindingSourceInput, optFns ...func(*awsschemas.Options)) (*awsschemas.GetCodeBindingSourceOutput, error)
}

// AWSDownloader implements CodeDownloader against the EventBridge Schemas
// service. Remote calls go through a shared circuit breaker so a flaky
// endpoint fails fast instead of stalling every poll attempt.
type AWSDownloader struct {
	api     BindingAPI
	breaker *gobreaker.CircuitBreaker
	poll    retry.Policy
}

// Option configures an AWSDownloader.
type Option func(*AWSDownloader)

// WithPollPolicy overrides the code generation poll pacing.
func WithPollPolicy(policy retry.Policy) Option {
	return func(d *AWSDownloader) {
		d.poll = policy
	}
}

// NewAWSDownloader creates a downloader over the given API client.
func NewAWSDownloader(api BindingAPI, opts ...Option) *AWSDownloader {
	d := &AWSDownloader{
		api: api,
		poll: retry.Policy{
			Interval: defaultPollInterval,
			Timeout:  defaultPollTimeout,
		},
	}

	d.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "schemas",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// DownloadCode requests code binding generation, waits for it to complete,
// fetches the source archive, and extracts it into the destination directory.
func (d *AWSDownloader) DownloadCode(ctx context.Context, request DownloadRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	log := logutil.Logger().With(
		"registryName", request.RegistryName,
		"schemaName", request.SchemaName,
		"language", request.Language,
	)
	log.Info("downloading schema code bindings")

	if err := d.ensureBinding(ctx, request); err != nil {
		return fmt.Errorf("requesting code binding generation: %w", err)
	}

	if err := d.waitForBinding(ctx, request); err != nil {
		return err
	}

	source, err := d.fetchSource(ctx, request)
	if err != nil {
		return fmt.Errorf("fetching code binding source: %w", err)
	}

	files, err := extractZip(source, request.DestinationDirectory)
	if err != nil {
		return fmt.Errorf("extracting code bindings: %w", err)
	}

	log.Info("schema code bindings extracted", "fileCount", len(files))
	return nil
}

// ensureBinding starts code generation. A conflict means generation is
// already underway for this binding, which is fine.
func (d *AWSDownloader) ensureBinding(ctx context.Context, request DownloadRequest) error {
	_, err := d.execute(func() (interface{}, error) {
		return d.api.PutCodeBinding(ctx, &awsschemas.PutCodeBindingInput{
			Language:      aws.String(request.Language),
			RegistryName:  aws.String(request.RegistryName),
			SchemaName:    aws.String(request.SchemaName),
			SchemaVersion: aws.String(request.SchemaVersion),
		})
	})

	var conflict *schematypes.ConflictException
	if errors.As(err, &conflict) {
		logutil.Debug("code binding generation already in progress",
			"schemaName", request.SchemaName)
		return nil
	}
	return err
}

// waitForBinding polls until the binding reports CREATE_COMPLETE.
func (d *AWSDownloader) waitForBinding(ctx context.Context, request DownloadRequest) error {
	predicate := func(ctx context.Context) (bool, error) {
		out, err := d.execute(func() (interface{}, error) {
			return d.api.DescribeCodeBinding(ctx, &awsschemas.DescribeCodeBindingInput{
				Language:      aws.String(request.Language),
				RegistryName:  aws.String(request.RegistryName),
				SchemaName:    aws.String(request.SchemaName),
				SchemaVersion: aws.String(request.SchemaVersion),
			})
		})
		if err != nil {
			// A binding that was just requested can briefly 404 before
			// the service materializes it.
			var notFound *schematypes.NotFoundException
			if errors.As(err, &notFound) {
				return false, nil
			}
			return false, err
		}

		describe := out.(*awsschemas.DescribeCodeBindingOutput)
		switch describe.Status {
		case schematypes.CodeGenerationStatusCreateComplete:
			return true, nil
		case schematypes.CodeGenerationStatusCreateFailed:
			return false, fmt.Errorf("code binding generation failed for schema %q", request.SchemaName)
		default:
			return false, nil
		}
	}

	if err := d.poll.Validate(); err != nil {
		return err
	}
	if err := retry.Poll(ctx, d.poll, predicate); err != nil {
		if errors.Is(err, retry.ErrTimeout) {
			return fmt.Errorf("timed out waiting for code binding generation for schema %q: %w",
				request.SchemaName, err)
		}
		return fmt.Errorf("waiting for code binding generation: %w", err)
	}
	return nil
}

// fetchSource retrieves the generated source archive.
func (d *AWSDownloader) fetchSource(ctx context.Context, request DownloadRequest) ([]byte, error) {
	out, err := d.execute(func() (interface{}, error) {
		return d.api.GetCodeBindingSource(ctx, &awsschemas.GetCodeBindingSourceInput{
			Language:      aws.String(request.Language),
			RegistryName:  aws.String(request.RegistryName),
			SchemaName:    aws.String(request.SchemaName),
			SchemaVersion: aws.String(request.SchemaVersion),
		})
	})
	if err != nil {
		return nil, err
	}

	source := out.(*awsschemas.GetCodeBindingSourceOutput)
	if len(source.Body) == 0 {
		return nil, fmt.Errorf("empty code binding source for schema %q", request.SchemaName)
	}
	return source.Body, nil
}

// execute routes a remote call through the circuit breaker.
func (d *AWSDownloader) execute(call func() (interface{}, error)) (interface{}, error) {
	out, err := d.breaker.Execute(call)
	if errors.Is(err, gobreaker.ErrOpenState) {
		return nil, fmt.Errorf("schemas service unavailable: %w", err)
	}
	return out, err
}
