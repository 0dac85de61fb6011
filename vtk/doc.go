/*
Package vtk writes the three VTK XML grid containers with raw appended
binary data: rectilinear grids (.vtr), structured grids (.vts) and
unstructured grids (.vtu).

All three files share one layout: a short XML header that declares every
data array with a byte offset, a single '_' marker, and then one
length-prefixed little-endian block per declared array, in declaration
order. Each block is an int32 byte count followed by the packed
elements. Geometry and point fields are stored as float32 whatever the
input precision; the unstructured connectivity, offsets and types
arrays are int32. The single-precision downcast is deliberate (it
halves the files and the 4-byte element size is baked into the offset
arithmetic), so keep double-precision data elsewhere if you need it.

Only point data is supported. Field blocks are the column-major
flattening of (components, dims...) arrays, see post.Fields.

The writers validate every shape and compute the whole offset table
before touching the disk, then write to a temporary file and rename it
into place, so a failing call never leaves a truncated file under the
requested name.
*/
package vtk
