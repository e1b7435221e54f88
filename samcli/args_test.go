package samcli

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flagValue returns the value following the first occurrence of flag, and
// whether the flag is present at all.
func flagValue(args []string, flag string) (string, bool) {
	for i, arg := range args {
		if arg == flag {
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", true
		}
	}
	return "", false
}

func zipRequest() InitRequest {
	return InitRequest{
		Name:              "my-app",
		Location:          "/tmp/projects",
		DependencyManager: "pip",
		Project:           ZipProject{Runtime: "python3.12", Template: "hello-world"},
	}
}

func TestBuildInitArgsZip(t *testing.T) {
	args, err := BuildInitArgs(zipRequest())
	require.NoError(t, err)

	assert.Equal(t, "init", args[0], "init must be the leading token")

	name, ok := flagValue(args, "--name")
	assert.True(t, ok)
	assert.Equal(t, "my-app", name)

	assert.Contains(t, args, "--no-interactive")

	dm, ok := flagValue(args, "--dependency-manager")
	assert.True(t, ok)
	assert.Equal(t, "pip", dm)

	rt, ok := flagValue(args, "--runtime")
	assert.True(t, ok)
	assert.Equal(t, "python3.12", rt)

	template, ok := flagValue(args, "--app-template")
	assert.True(t, ok)
	assert.Equal(t, "hello-world", template)

	_, ok = flagValue(args, "--base-image")
	assert.False(t, ok, "zip projects must not carry --base-image")

	// Location becomes the working directory, never an argument.
	assert.NotContains(t, args, "/tmp/projects")
}

func TestBuildInitArgsZipWithoutTemplate(t *testing.T) {
	request := zipRequest()
	request.Project = ZipProject{Runtime: "python3.12"}

	args, err := BuildInitArgs(request)
	require.NoError(t, err)

	_, ok := flagValue(args, "--app-template")
	assert.False(t, ok, "--app-template must be omitted when no template is set")
}

func TestBuildInitArgsImage(t *testing.T) {
	request := zipRequest()
	request.Project = ImageProject{Runtime: "nodejs20.x"}

	args, err := BuildInitArgs(request)
	require.NoError(t, err)

	image, ok := flagValue(args, "--base-image")
	assert.True(t, ok)
	assert.Equal(t, "amazon/nodejs20.x-base", image)

	pkg, ok := flagValue(args, "--package-type")
	assert.True(t, ok)
	assert.Equal(t, "Image", pkg)

	_, ok = flagValue(args, "--runtime")
	assert.False(t, ok, "image projects must not carry --runtime")
	_, ok = flagValue(args, "--app-template")
	assert.False(t, ok, "image projects must not carry --app-template")
}

func TestBuildInitArgsImageOverride(t *testing.T) {
	request := zipRequest()
	request.Project = ImageProject{Runtime: "go1.x", BaseImage: "amazon/custom-base"}

	args, err := BuildInitArgs(request)
	require.NoError(t, err)

	image, _ := flagValue(args, "--base-image")
	assert.Equal(t, "amazon/custom-base", image)
}

func TestBuildInitArgsExtraContext(t *testing.T) {
	request := zipRequest()
	request.ExtraContext = map[string]string{
		"schema_name": "aws.ec2.EC2InstanceStateChangeNotificationEvent",
		"registry":    "aws.events",
	}

	args, err := BuildInitArgs(request)
	require.NoError(t, err)

	encoded, ok := flagValue(args, "--extra-context")
	require.True(t, ok)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))
	assert.True(t, reflect.DeepEqual(request.ExtraContext, decoded),
		"decoded extra context must deep-equal the original mapping")

	// Exactly one --extra-context entry.
	count := 0
	for _, arg := range args {
		if arg == "--extra-context" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBuildInitArgsNoExtraContextFlagWhenAbsent(t *testing.T) {
	args, err := BuildInitArgs(zipRequest())
	require.NoError(t, err)

	_, ok := flagValue(args, "--extra-context")
	assert.False(t, ok)
}

func TestBuildInitArgsValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InitRequest)
	}{
		{"missing name", func(r *InitRequest) { r.Name = "" }},
		{"missing location", func(r *InitRequest) { r.Location = "" }},
		{"missing dependency manager", func(r *InitRequest) { r.DependencyManager = "" }},
		{"missing project", func(r *InitRequest) { r.Project = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := zipRequest()
			tt.mutate(&request)
			_, err := BuildInitArgs(request)
			assert.Error(t, err)
		})
	}
}

func TestBuildPackageArgs(t *testing.T) {
	request := PackageRequest{
		SourceTemplatePath:      "template",
		DestinationTemplatePath: "output",
		S3Bucket:                "bucket",
		Region:                  "region",
	}

	args := BuildPackageArgs(request)

	assert.Equal(t, "package", args[0])

	src, _ := flagValue(args, "--template-file")
	assert.Equal(t, "template", src)
	bucket, _ := flagValue(args, "--s3-bucket")
	assert.Equal(t, "bucket", bucket)
	out, _ := flagValue(args, "--output-template-file")
	assert.Equal(t, "output", out)
	region, _ := flagValue(args, "--region")
	assert.Equal(t, "region", region)

	_, ok := flagValue(args, "--image-repository")
	assert.False(t, ok, "--image-repository must be omitted when no ECR repo is supplied")
}

func TestBuildPackageArgsWithECRRepo(t *testing.T) {
	request := PackageRequest{
		SourceTemplatePath:      "template",
		DestinationTemplatePath: "output",
		S3Bucket:                "bucket",
		Region:                  "region",
		ECRRepo:                 "ecrRepo",
	}

	args := BuildPackageArgs(request)

	repo, ok := flagValue(args, "--image-repository")
	assert.True(t, ok)
	assert.Equal(t, "ecrRepo", repo)
}
