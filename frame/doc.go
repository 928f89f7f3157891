// Package frame wraps one encoded value in a self-checking envelope.
//
// A frame is a fixed 20-byte header followed by the payload:
//
//	offset  size  field
//	0       2     magic 'M' 'V'
//	2       1     version (1)
//	3       1     compression (format.CompressionType)
//	4       4     payload length after compression
//	8       4     raw length of the MessagePack encoding
//	12      8     xxHash64 of the raw encoding
//	20      n     payload
//
// Frames carry their own length, so they can be concatenated in a file or a
// stream and read back with DecodeAll:
//
//	data, err := frame.Encode(v, frame.WithCompression(format.CompressionZstd))
//	...
//	back, err := frame.Decode[variant.Owned](data)
//
// Decoding checks the header, bounds the declared raw size (WithMaxRawSize),
// decompresses, verifies the checksum and finally decodes the value, which
// must consume the payload exactly.
package frame
