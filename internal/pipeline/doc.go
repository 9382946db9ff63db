// Package pipeline streams FASTA records of one file through a Chopper on a
// pool of workers and hands results to a visit callback in input order.
//
// The only contract to implement is Chopper (Chop). This keeps the pipeline
// swappable and testable.
package pipeline
