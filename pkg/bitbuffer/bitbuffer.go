package bitbuffer

import (
	"encoding/binary"
	"errors"
)

const (
	// MaxLen is the maximum number of bits a BitBuffer can hold
	MaxLen = 1<<31 - 1
	// initialWords is the starting storage capacity in 32-bit words (2048 bits)
	initialWords = 64
)

var (
	// ErrOutOfRange indicates a bit index outside [0, Len())
	ErrOutOfRange = errors.New("bit index out of range")
	// ErrValueOutOfRange indicates a value or bit count outside the append contract
	ErrValueOutOfRange = errors.New("value out of range")
	// ErrNotByteAligned indicates the bit length is not a whole number of bytes
	ErrNotByteAligned = errors.New("bit length is not a whole number of bytes")
	// ErrMaxLen indicates an append would push the bit length past MaxLen
	ErrMaxLen = errors.New("maximum bit length reached")
)

// BitBuffer represents an appendable sequence of bits (0s and 1s).
// Bit layout:
//
//	bit i lives in words[i/32] at position 31-i%32,
//
// so the first bit appended is the most significant bit of the first
// word and the packed stream reads big-endian. Bits at index Len() and
// beyond are always zero.
type BitBuffer struct {
	words []uint32 // packed storage; len(words) is the capacity in words, a power of two
	bits  int      // number of bits appended so far
}

// New returns an empty BitBuffer with an initial capacity of 2048 bits.
func New() *BitBuffer {
	return &BitBuffer{words: make([]uint32, initialWords)}
}

// Len returns the number of bits appended so far.
func (b *BitBuffer) Len() int {
	return b.bits
}

// GetBit returns the bit at index i, as 0 or 1.
// Valid indices are 0 <= i < Len().
func (b *BitBuffer) GetBit(i int) (int, error) {
	if i < 0 || i >= b.bits {
		return 0, ErrOutOfRange
	}
	return int(b.words[i/32] >> (31 - i%32) & 1), nil
}

// GetBytes returns the buffer's bits packed into bytes, MSB first: the
// first bit appended becomes the most significant bit of the first byte.
// The bit length must be a multiple of 8. The returned slice is a copy
// and does not alias the buffer's storage.
func (b *BitBuffer) GetBytes() ([]byte, error) {
	if b.bits%8 != 0 {
		return nil, ErrNotByteAligned
	}
	out := make([]byte, b.bits/8)
	i := 0
	for ; i+4 <= len(out); i += 4 {
		binary.BigEndian.PutUint32(out[i:], b.words[i/4])
	}
	// Remaining bytes come from the high end of a partially filled word
	for ; i < len(out); i++ {
		out[i] = byte(b.words[i/4] >> (24 - 8*(i%4)))
	}
	return out, nil
}

// AppendBits appends the n low-order bits of val to the buffer, most
// significant of those bits first. Requires 0 <= n <= 31 and val < 1<<n.
// On error the buffer is unchanged.
func (b *BitBuffer) AppendBits(val uint32, n int) error {
	if n < 0 || n > 31 || val>>n != 0 {
		return ErrValueOutOfRange
	}
	if n > MaxLen-b.bits {
		return ErrMaxLen
	}
	if n == 0 {
		return nil
	}
	b.grow(b.bits + n)

	remain := 32 - b.bits%32 // free bits in the current word, 1..32
	if remain < n {
		// The run crosses a word boundary: the top remain bits finish
		// the current word, the rest start the next one.
		b.words[b.bits/32] |= val >> (n - remain)
		b.bits += remain
		n -= remain
		val &= 1<<n - 1
		remain = 32
	}
	b.words[b.bits/32] |= val << (remain - n)
	b.bits += n
	return nil
}

// AppendWords appends the first n bits of vals to the buffer, drawing
// bits from each word MSB first. The result is identical to appending
// each 32-bit group with AppendBits. Requires 0 <= n <= 32*len(vals);
// if n is not a multiple of 32, the unused low-order bits of the last
// word read must be zero. On error the buffer is unchanged.
func (b *BitBuffer) AppendWords(vals []uint32, n int) error {
	if n == 0 {
		return nil
	}
	if n < 0 || n > 32*len(vals) {
		return ErrValueOutOfRange
	}
	whole := n / 32
	tail := n % 32
	if tail > 0 && vals[whole]<<tail != 0 {
		return ErrValueOutOfRange
	}
	if n > MaxLen-b.bits {
		return ErrMaxLen
	}
	b.grow(b.bits + n)

	shift := b.bits % 32
	if shift == 0 {
		// Word-aligned destination: copy whole words directly,
		// including the zero-padded partial word if any.
		copy(b.words[b.bits/32:], vals[:(n+31)/32])
		b.bits += n
		return nil
	}

	// Misaligned destination: each source word tops up the current word
	// and spills its low bits into the next. The spill is a plain store;
	// every bit at index bits and beyond is zero, so nothing is lost.
	for _, w := range vals[:whole] {
		b.words[b.bits/32] |= w >> shift
		b.bits += 32
		b.words[b.bits/32] = w << (32 - shift)
	}
	if tail > 0 {
		return b.AppendBits(vals[whole]>>(32-tail), tail)
	}
	return nil
}

// grow ensures the storage holds at least need bits, doubling the word
// capacity until it fits. All reallocation happens here; appended words
// are copied over and new words start zero.
func (b *BitBuffer) grow(need int) {
	words := len(b.words)
	if words == 0 {
		words = initialWords
	}
	for need > words*32 {
		words *= 2
	}
	if words != len(b.words) {
		next := make([]uint32, words)
		copy(next, b.words)
		b.words = next
	}
}
