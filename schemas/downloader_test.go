package schemas

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	awsschemas "github.com/aws/aws-sdk-go-v2/service/schemas"
	schematypes "github.com/aws/aws-sdk-go-v2/service/schemas/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
	"github.com/ss22219/aws-toolkit-vscode/retry"
)

func setupTestLogger(t *testing.T) {
	t.Helper()
	logutil.SetupLoggerWithWriter(io.Discard, false, false)
}

func fastPoll() retry.Policy {
	return retry.Policy{Interval: time.Millisecond, Timeout: 250 * time.Millisecond}
}

func validRequest(dest string) DownloadRequest {
	return DownloadRequest{
		RegistryName:         "aws.events",
		SchemaName:           "aws.ec2.EC2InstanceStateChangeNotificationEvent",
		SchemaVersion:        "1",
		Language:             "Python36",
		DestinationDirectory: dest,
	}
}

// fakeBindingAPI scripts responses for each remote operation.
type fakeBindingAPI struct {
	putErr       error
	putCalls     int
	describeSeq  []schematypes.CodeGenerationStatus
	describeErr  error
	describeIdx  int
	sourceBody   []byte
	sourceErr    error
	lastLanguage string
}

func (f *fakeBindingAPI) PutCodeBinding(ctx context.Context, params *awsschemas.PutCodeBindingInput, optFns ...func(*awsschemas.Options)) (*awsschemas.PutCodeBindingOutput, error) {
	f.putCalls++
	if params.Language != nil {
		f.lastLanguage = *params.Language
	}
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &awsschemas.PutCodeBindingOutput{}, nil
}

func (f *fakeBindingAPI) DescribeCodeBinding(ctx context.Context, params *awsschemas.DescribeCodeBindingInput, optFns ...func(*awsschemas.Options)) (*awsschemas.DescribeCodeBindingOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	status := schematypes.CodeGenerationStatusCreateInProgress
	if len(f.describeSeq) > 0 {
		idx := f.describeIdx
		if idx >= len(f.describeSeq) {
			idx = len(f.describeSeq) - 1
		}
		status = f.describeSeq[idx]
		f.describeIdx++
	}
	return &awsschemas.DescribeCodeBindingOutput{Status: status}, nil
}

func (f *fakeBindingAPI) GetCodeBindingSource(ctx context.Context, params *awsschemas.GetCodeBindingSourceInput, optFns ...func(*awsschemas.Options)) (*awsschemas.GetCodeBindingSourceOutput, error) {
	if f.sourceErr != nil {
		return nil, f.sourceErr
	}
	return &awsschemas.GetCodeBindingSourceOutput{Body: f.sourceBody}, nil
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDownloadRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DownloadRequest)
		wantErr bool
	}{
		{name: "complete request", mutate: func(r *DownloadRequest) {}},
		{name: "missing registry", mutate: func(r *DownloadRequest) { r.RegistryName = "" }, wantErr: true},
		{name: "missing schema", mutate: func(r *DownloadRequest) { r.SchemaName = "" }, wantErr: true},
		{name: "missing version", mutate: func(r *DownloadRequest) { r.SchemaVersion = "" }, wantErr: true},
		{name: "missing language", mutate: func(r *DownloadRequest) { r.Language = "" }, wantErr: true},
		{name: "missing destination", mutate: func(r *DownloadRequest) { r.DestinationDirectory = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("/tmp/out")
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDownloadCodeExtractsSources(t *testing.T) {
	setupTestLogger(t)
	dest := t.TempDir()

	api := &fakeBindingAPI{
		describeSeq: []schematypes.CodeGenerationStatus{
			schematypes.CodeGenerationStatusCreateInProgress,
			schematypes.CodeGenerationStatusCreateComplete,
		},
		sourceBody: buildZip(t, map[string]string{
			"schema/aws/ec2/event.py": "class Event:\n    pass\n",
			"README.md":               "generated bindings\n",
		}),
	}

	d := NewAWSDownloader(api, WithPollPolicy(fastPoll()))
	err := d.DownloadCode(context.Background(), validRequest(dest))
	require.NoError(t, err)

	assert.Equal(t, "Python36", api.lastLanguage)

	data, err := os.ReadFile(filepath.Join(dest, "schema", "aws", "ec2", "event.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "class Event")

	_, err = os.Stat(filepath.Join(dest, "README.md"))
	assert.NoError(t, err)
}

func TestDownloadCodeToleratesConflict(t *testing.T) {
	setupTestLogger(t)
	dest := t.TempDir()

	api := &fakeBindingAPI{
		putErr:      &schematypes.ConflictException{},
		describeSeq: []schematypes.CodeGenerationStatus{schematypes.CodeGenerationStatusCreateComplete},
		sourceBody:  buildZip(t, map[string]string{"event.go": "package event\n"}),
	}

	d := NewAWSDownloader(api, WithPollPolicy(fastPoll()))
	err := d.DownloadCode(context.Background(), validRequest(dest))
	require.NoError(t, err)
	assert.Equal(t, 1, api.putCalls)
}

func TestDownloadCodeGenerationFailed(t *testing.T) {
	setupTestLogger(t)

	api := &fakeBindingAPI{
		describeSeq: []schematypes.CodeGenerationStatus{schematypes.CodeGenerationStatusCreateFailed},
	}

	d := NewAWSDownloader(api, WithPollPolicy(fastPoll()))
	err := d.DownloadCode(context.Background(), validRequest(t.TempDir()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation failed")
	assert.False(t, errors.Is(err, retry.ErrTimeout))
}

func TestDownloadCodeGenerationTimeout(t *testing.T) {
	setupTestLogger(t)

	api := &fakeBindingAPI{
		describeSeq: []schematypes.CodeGenerationStatus{schematypes.CodeGenerationStatusCreateInProgress},
	}

	d := NewAWSDownloader(api, WithPollPolicy(retry.Policy{
		Interval: time.Millisecond,
		Timeout:  20 * time.Millisecond,
	}))
	err := d.DownloadCode(context.Background(), validRequest(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, retry.ErrTimeout))
}

func TestDownloadCodeEmptySource(t *testing.T) {
	setupTestLogger(t)

	api := &fakeBindingAPI{
		describeSeq: []schematypes.CodeGenerationStatus{schematypes.CodeGenerationStatusCreateComplete},
		sourceBody:  nil,
	}

	d := NewAWSDownloader(api, WithPollPolicy(fastPoll()))
	err := d.DownloadCode(context.Background(), validRequest(t.TempDir()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty code binding source")
}

func TestExtractZipRejectsEscapingEntry(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	entry, err := w.Create("../outside.txt")
	require.NoError(t, err)
	_, err = entry.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = extractZip(buf.Bytes(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}
