package dilithium

import (
	"github.com/cloudflare/circl/xof"
)

// XOF rates in bytes.
const (
	shake128Rate = 168
	shake256Rate = 136
)

// unboundedRefills lets a stream pull blocks for as long as it is read.
const unboundedRefills = -1

// xofStream is a pull-based byte stream over an extendable-output function.
// It squeezes a fixed burst up front and then, whenever a read needs more
// bytes than remain, keeps the unconsumed tail and squeezes exactly one more
// rate-sized block. The refill budget bounds how many extra blocks may be
// taken; a read that cannot be served within it fails.
type xofStream struct {
	h       xof.XOF
	rate    int
	buf     []byte
	pos     int
	refills int
}

// newXOFStream absorbs the inputs in order and squeezes burst blocks.
func newXOFStream(id xof.ID, rate, burst, refills int, inputs ...[]byte) *xofStream {
	h := id.New()
	for _, in := range inputs {
		_, _ = h.Write(in)
	}
	s := &xofStream{
		h:       h,
		rate:    rate,
		buf:     make([]byte, burst*rate, (burst+1)*rate),
		refills: refills,
	}
	_, _ = h.Read(s.buf)
	return s
}

// next returns the next k bytes of output, k <= rate. The returned slice is
// only valid until the following call. ok is false once the refill budget is
// exhausted.
func (s *xofStream) next(k int) (b []byte, ok bool) {
	if len(s.buf)-s.pos < k {
		if s.refills == 0 {
			return nil, false
		}
		if s.refills > 0 {
			s.refills--
		}
		tail := copy(s.buf, s.buf[s.pos:])
		s.buf = s.buf[:tail+s.rate]
		_, _ = s.h.Read(s.buf[tail:])
		s.pos = 0
	}
	b = s.buf[s.pos : s.pos+k]
	s.pos += k
	return b, true
}

// wipe zeroes the buffered output.
func (s *xofStream) wipe() {
	clear(s.buf[:cap(s.buf)])
}

// shake256 absorbs the inputs in order and fills out.
func shake256(out []byte, inputs ...[]byte) {
	h := xof.SHAKE256.New()
	for _, in := range inputs {
		_, _ = h.Write(in)
	}
	_, _ = h.Read(out)
}
