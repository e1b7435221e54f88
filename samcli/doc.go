// Package samcli wraps the AWS SAM CLI binary.
//
// It locates and validates the installed CLI, builds argument vectors for
// the init and package subcommands, runs the binary as a subprocess with
// full output capture, and validates exit codes. All failures are typed:
// an invalid installation, a process that never launched, and a process
// that exited with the wrong code are distinct errors.
package samcli
