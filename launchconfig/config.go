// Package launchconfig manages debug launch configurations for created
// projects.
//
// The reconciler selects the configuration templates that reference a given
// project file, optionally stamps a runtime onto them, and persists them
// through a Store. Path comparison resolves ${workspaceFolder} placeholders
// and relative paths against the workspace root rather than comparing raw
// strings.
package launchconfig

// Debug configuration constants for SAM applications.
const (
	// ConfigType is the debug configuration type identifier.
	ConfigType = "aws-sam"
	// RequestDirectInvoke is the request kind for direct Lambda invocation.
	RequestDirectInvoke = "direct-invoke"

	// TargetTemplate marks configurations that reference a resource inside
	// a SAM template file.
	TargetTemplate = "template"
	// TargetCode marks configurations that reference source code directly.
	TargetCode = "code"
)

// InvokeTarget identifies what a configuration invokes: a logical resource
// inside a template file, or source code directly. Exactly one variant's
// fields are populated, selected by Target.
type InvokeTarget struct {
	Target string `json:"target"`

	// Template variant.
	TemplatePath string `json:"templatePath,omitempty"`
	LogicalID    string `json:"logicalId,omitempty"`

	// Code variant.
	LambdaHandler string `json:"lambdaHandler,omitempty"`
	ProjectRoot   string `json:"projectRoot,omitempty"`
}

// LambdaProperties holds runtime-level invoke settings.
type LambdaProperties struct {
	Runtime string `json:"runtime,omitempty"`
	Payload string `json:"payload,omitempty"`
}

// DebugConfiguration is one launch configuration template.
type DebugConfiguration struct {
	Type    string            `json:"type"`
	Name    string            `json:"name"`
	Request string            `json:"request"`
	Invoke  InvokeTarget      `json:"invokeTarget"`
	Lambda  *LambdaProperties `json:"lambda,omitempty"`
}

// IsTemplateTarget reports whether the configuration invokes a template
// resource.
func (c *DebugConfiguration) IsTemplateTarget() bool {
	return c.Invoke.Target == TargetTemplate
}

// SetRuntime ensures the nested Lambda properties object exists and sets
// its runtime field.
func (c *DebugConfiguration) SetRuntime(runtime string) {
	if c.Lambda == nil {
		c.Lambda = &LambdaProperties{}
	}
	c.Lambda.Runtime = runtime
}
