// Package gto reads GTO files.
//
// A GTO file holds named objects, each made of named components, each
// made of named properties. A property is a typed array of elements, each
// element being width values of one primitive type.
//
// A [Reader] session works in one of three modes, chosen with [WithMode]:
//
//   - [Streaming] (default): Open makes a single pass over the file and asks
//     the configured callbacks whether to keep each object, component and
//     property. Accepted properties are decoded and handed to [DataSink].
//   - [HeaderOnly]: like Streaming, but data blocks are never read.
//   - [RandomAccess]: Open indexes the whole hierarchy without calling any
//     callback; property data is decoded on demand with
//     [Reader.AccessProperty].
//
// Example:
//
//	r := gto.NewReader(gto.WithMode(gto.RandomAccess))
//	if err := r.Open("scene.gto"); err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	h, err := r.GetProperty("particles", "points", "position")
//	if err != nil || h == gto.NotFound {
//	    return err
//	}
//	data, err := r.AccessProperty(h)
//	if err != nil {
//	    return err
//	}
//	positions, _ := gto.Elements[float32](data) // [][]float32, one per point
//
// Handles are indices into the session's index, valid until Close or the
// next Open. Methods that return an error report [ErrNotOpen] outside an
// open session; the plain accessors (Version, IsSwapped, Digest and the
// Num* counts) return zero values instead. A Reader is not safe for concurrent use, and callbacks must
// not call back into the Reader that invoked them.
package gto
