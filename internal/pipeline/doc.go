// Package pipeline runs the multi-stage processing that turns discovered
// result sources into report data files.
//
// The run receives the assembled service graph and the output directory,
// and executes its stages in sequence: collect results from every source,
// record the build into history, aggregate widgets from every graph
// contributor, and write the data files. Each stage receives the
// accumulated report data from previous stages.
//
// Design decision: We use a pipeline of named stages instead of one
// function because:
//  1. It allows adding or removing stages without modifying core logic
//  2. It provides consistent error handling and logging across stages
//  3. It supports cancellation via context between stages
//
// The default run continues on stage errors: the report build is best
// effort, and a failed aggregation or write degrades the report rather
// than aborting it.
package pipeline
