// Package tiechan implements a typed, asynchronous, multi-producer/
// multi-consumer channel with a bounded buffer, a non-blocking
// try-consume, asynchronous send and consume operations that suspend the
// caller's continuation until they can complete, an explicit terminal
// close state, and a first-past-the-post "tie" operator that waits on a
// heterogeneous set of send and receive candidates and commits exactly
// one of them.
//
// A Channel is safe for concurrent use by any number of producers and
// consumers. Capacity zero makes a rendezvous channel: every successful
// send synchronizes directly with a matching receive, and no value is
// ever buffered.
//
// Completions are always delivered asynchronously, on the Scheduler
// associated with the channel (or a per-call override), and never inline
// on the goroutine that submitted the operation.
package tiechan
