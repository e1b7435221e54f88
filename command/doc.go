// Package command builds the toolkit's cobra command tree: project
// creation, template packaging, and version reporting.
package command
