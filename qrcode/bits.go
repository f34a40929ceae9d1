package qrcode

// bitBuffer is an append-only sequence of bits, most significant first.
type bitBuffer struct {
	b    []byte
	nbit int
}

func (b *bitBuffer) Len() int { return b.nbit }

// Write appends the low n bits of v.
func (b *bitBuffer) Write(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		if b.nbit%8 == 0 {
			b.b = append(b.b, 0)
		}
		if v>>uint(i)&1 != 0 {
			b.b[len(b.b)-1] |= 0x80 >> uint(b.nbit%8)
		}
		b.nbit++
	}
}

// Bytes returns the buffer contents. A partial final byte is zero-padded.
func (b *bitBuffer) Bytes() []byte { return b.b }
