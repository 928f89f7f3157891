// Package fixed converts fixed-length Go sequences to and from MessagePack
// arrays.
//
// The length is fixed by the Go side: Decode fills a slice of length N and
// accepts only arrays of exactly N elements, Encode always writes len(src)
// elements. Element conversion is delegated to a Codec:
//
//	var point [3]float64
//	if err := fixed.Decode(obj, point[:], fixed.Float64()); err != nil {
//	    // errs.ErrType: obj is not an array of 3 numbers
//	}
//
//	data, err := fixed.Marshal(point[:], fixed.Float64())
//
// A length mismatch fails with errs.ErrType in both directions, too short and
// too long alike.
package fixed
