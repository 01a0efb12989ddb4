// Package loader reads almanac documents, a seed list followed by named translation stages, from
// the text or the YAML format and builds the matching almanac pipeline.
package loader
