// Package errors provides structured error types for the bundling
// pipeline.
//
// Every error carries the pipeline phase it occurred in and a kind that
// categorizes the failure, so host bundlers can report which stage of a
// file's processing broke without string matching. Errors wrap their
// underlying cause and work with the standard errors.Is/errors.As
// machinery.
package errors
