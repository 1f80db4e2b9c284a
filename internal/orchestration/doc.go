// Package orchestration runs the demonstration workloads that drive a
// progress tree: a named Scenario receives the root node and reports into
// it, usually through forked children running concurrently. Execution is
// traced with OpenTelemetry spans and logged through internal/logging.
package orchestration
