// Package pipeline provides a generic, channel based pipeline for processing data.
//
// A pipeline is a graph of steps. A root step produces elements, normal steps transform them one to
// one or one to many, splitters broadcast them to several branches, mergers join branches back, and
// sinks consume them. Every step runs in its own goroutines and passes elements to its children
// through channels, so independent elements are processed concurrently and a step can be scaled
// with StepConcurrency.
//
// The pipeline stops on the first error returned by any step and cancels the others. Options such
// as measure and drawer observe the pipeline through the model.PipelineOption hooks.
package pipeline
