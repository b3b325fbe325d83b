// Package dtype maps GTO element types to Go types.
//
// GTO properties hold a flat block of count*width values of one element
// type. The mapping is fixed:
//
//	GTO type | Size | Go type
//	---------|------|---------
//	int      | 4    | int32
//	float    | 4    | float32
//	double   | 8    | float64
//	half     | 2    | float32 (widened)
//	string   | 4    | string (string-table id)
//	bool     | 1    | bool
//	short    | 2    | uint16
//	byte     | 1    | uint8
//
// Use [Convert] to decode a raw block and [Encode] to produce one.
package dtype
