package sourcemap

import (
	"strings"

	"github.com/ztrue/tracerr"
)

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	vlqShift        = 5
	vlqMask         = 1<<vlqShift - 1
	vlqContinuation = 1 << vlqShift
)

var base64Index = func() (idx [128]int8) {
	for i := range idx {
		idx[i] = -1
	}
	for i, c := range base64Chars {
		idx[c] = int8(i)
	}
	return
}()

// EncodeVLQ encodes one signed value. The sign goes into the lowest bit,
// then five bits are emitted per digit, least significant first, with the
// continuation bit set on all digits but the last.
func EncodeVLQ(v int) string {
	var b strings.Builder
	writeVLQ(&b, v)
	return b.String()
}

func writeVLQ(b *strings.Builder, v int) {
	var vlq uint
	if v < 0 {
		vlq = uint(-v)<<1 | 1
	} else {
		vlq = uint(v) << 1
	}
	for {
		digit := vlq & vlqMask
		vlq >>= vlqShift
		if vlq > 0 {
			digit |= vlqContinuation
		}
		b.WriteByte(base64Chars[digit])
		if vlq == 0 {
			return
		}
	}
}

// DecodeVLQ decodes a run of VLQ values, such as one mapping segment.
func DecodeVLQ(s string) ([]int, error) {
	var (
		values []int
		vlq    uint
		shift  uint
		open   bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || base64Index[c] < 0 {
			return nil, tracerr.Errorf("invalid base64 digit %q at offset %d", c, i)
		}
		digit := uint(base64Index[c])
		vlq |= (digit & vlqMask) << shift
		if digit&vlqContinuation != 0 {
			shift += vlqShift
			open = true
			continue
		}

		v := int(vlq >> 1)
		if vlq&1 == 1 {
			v = -v
		}
		values = append(values, v)
		vlq, shift, open = 0, 0, false
	}
	if open {
		return nil, tracerr.Errorf("truncated VLQ value in %q", s)
	}
	return values, nil
}
