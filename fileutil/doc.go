// Package fileutil provides filesystem helpers shared across the toolkit.
//
// The write helpers follow the write-temp-then-rename pattern so that
// persisted files (launch configurations, workspace files) are never left in
// a partial state, even when a workflow run is interrupted.
package fileutil
