// Package extractor is the boundary between restviz and the extraction
// engine that produces the visualization graph data.
//
// Entry points are grouped in namespaces. A namespace is loaded on demand by
// Runtime.Require, which runs the namespace loader until it first succeeds,
// and entry points are then looked up by name with Runtime.Resolve. The built-in
// namespace "rest-resources-viz.extract" exposes "run-extractor", which runs
// the external extractor as a subprocess speaking a JSON request/response
// protocol over stdin/stdout and streaming its log over stderr.
package extractor
