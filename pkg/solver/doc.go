// Package solver runs an almanac pipeline over a batch of seeds on top of the streaming pipeline
// package. Each stage becomes a pipeline step, so seeds and sub-ranges move through the stages
// concurrently, and the results are reduced to the smallest final value per mode.
package solver
