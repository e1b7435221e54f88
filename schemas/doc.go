// Package schemas downloads generated code bindings for EventBridge schemas
// and extracts them into a project directory.
package schemas
