// Package nanosvg parses a subset of SVG 1.1 into an in-memory scene
// graph of cubic-Bézier paths with paint, stroke, gradient, and SMIL
// animation attributes, and evaluates that scene graph at a given
// timestamp for consumption by an external rasterizer.
//
// The package is split along the dependency order of its components:
// number scanning and unit conversion, transform/color parsing, the
// path-data mini-language, shape builders, the attribute stack, the
// gradient and viewBox resolvers, and finally the animate parser and
// per-frame animation engine. See Parse and Animate for the external
// entry points.
package nanosvg
