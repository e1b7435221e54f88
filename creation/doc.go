// Package creation sequences the end-to-end "create serverless application"
// workflow: validate the SAM CLI, run the selection wizard, scaffold the
// project, optionally download schema code bindings, register the project
// with the workspace, wait for the template registry to observe the new
// template, and reconcile debug launch configurations.
package creation
