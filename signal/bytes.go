package signal

// Bytes is a byte buffer signal. It is passed by reference: the slice header
// is copied but the backing array belongs to the producer. Its length is
// part of its shape.
type Bytes []byte

func (b Bytes) Kind() Kind { return KindBytes }

func (b Bytes) PassBy() PassBy { return ByReference }

func (b Bytes) AppendFloats(dst []float64) []float64 {
	for _, c := range b {
		dst = append(dst, float64(c))
	}
	return dst
}
