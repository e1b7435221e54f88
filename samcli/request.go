package samcli

import (
	"fmt"
)

// PackageType identifies how a created project is packaged for deployment.
type PackageType string

const (
	// PackageTypeZip deploys function code as a zip archive.
	PackageTypeZip PackageType = "Zip"
	// PackageTypeImage deploys function code as a container image.
	PackageTypeImage PackageType = "Image"
)

// Project is the variant payload of an InitRequest. Exactly one concrete
// type exists per package type, so a request can never carry both a runtime
// template configuration and a base image.
type Project interface {
	// PackageType identifies the variant.
	PackageType() PackageType
}

// ZipProject configures a runtime-based zip project.
type ZipProject struct {
	// Runtime is the Lambda runtime identifier, e.g. "python3.12".
	Runtime string
	// Template is the optional application template name. When empty no
	// --app-template flag is emitted.
	Template string
}

// PackageType identifies the variant.
func (ZipProject) PackageType() PackageType { return PackageTypeZip }

// ImageProject configures a container-image project.
type ImageProject struct {
	// Runtime is the Lambda runtime the base image is derived from.
	Runtime string
	// BaseImage overrides the derived base image name. When empty the image
	// is derived from the runtime.
	BaseImage string
}

// PackageType identifies the variant.
func (ImageProject) PackageType() PackageType { return PackageTypeImage }

// Image returns the base image name, deriving it from the runtime when no
// override was supplied.
func (p ImageProject) Image() string {
	if p.BaseImage != "" {
		return p.BaseImage
	}
	return fmt.Sprintf("amazon/%s-base", p.Runtime)
}

// InitRequest describes a "create project" CLI call.
type InitRequest struct {
	// Name is the project name. The CLI creates <Location>/<Name>.
	Name string

	// Location is the parent directory the project is created under. It is
	// used as the subprocess working directory, not as a flag.
	Location string

	// DependencyManager selects the dependency tool for the chosen runtime,
	// e.g. "pip" or "npm".
	DependencyManager string

	// Project is the Zip or Image variant payload.
	Project Project

	// ExtraContext carries additional cookiecutter template context. When
	// non-empty it is serialized as a single JSON document for
	// --extra-context.
	ExtraContext map[string]string
}

// Runtime returns the runtime identifier of either variant, or "" when the
// request has no project payload.
func (r InitRequest) Runtime() string {
	switch p := r.Project.(type) {
	case ZipProject:
		return p.Runtime
	case ImageProject:
		return p.Runtime
	default:
		return ""
	}
}

// Validate checks the request for required fields.
func (r InitRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("init request: project name is required")
	}
	if r.Location == "" {
		return fmt.Errorf("init request: location is required")
	}
	if r.DependencyManager == "" {
		return fmt.Errorf("init request: dependency manager is required")
	}
	if r.Project == nil {
		return fmt.Errorf("init request: project payload is required")
	}
	return nil
}

// PackageRequest describes a "package" CLI call.
type PackageRequest struct {
	// SourceTemplatePath is the template file to package.
	SourceTemplatePath string
	// DestinationTemplatePath receives the packaged template.
	DestinationTemplatePath string
	// S3Bucket receives uploaded artifacts.
	S3Bucket string
	// Region is the deployment region.
	Region string
	// ECRRepo is the optional image repository URI. When empty no
	// --image-repository flag is emitted.
	ECRRepo string
}
