// Package stage splits a denormalized transfer function into cascadable
// sections of order one or two.
//
// Roots are first grouped with [Pairs] into conjugate pairs and real
// singletons. [AutoPartition] then combines pole groups into the minimum
// number of sections and distributes zero groups over them. [Build] turns a
// group of roots into a [Stage] holding its transfer function.
//
// Root coordinates are Hz-scaled complex frequencies, so natural frequencies
// reported here are in Hz.
package stage
