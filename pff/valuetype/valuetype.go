// Package valuetype converts raw MAPI property byte buffers into typed
// values. It is grounded directly on original_source/libpff/libpff_value_type.c
// and generalizes the teacher's inline switch-on-mapi-type blocks
// (parsemsg.go's extractData/extractDataFromBytes) into standalone,
// independently testable conversions.
package valuetype

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
	"unicode/utf8"

	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/codepage"
)

const op = "valuetype"

// Codepage sentinel values recognised directly by the string decoding
// policy, per §4.1: 1200 is the "Unicode" sentinel, 65000 is UTF-7, 65001
// is UTF-8.
const (
	CodepageUnicode uint32 = 1200
	CodepageUTF7    uint32 = 65000
	CodepageUTF8    uint32 = 65001
)

// StringContainsZeroBytes returns true iff a 0x00 byte is followed by any
// non-zero byte within buffer. Trailing zero bytes are ignored. This is the
// probe that transparently upgrades a hinted-ASCII buffer to UTF-16LE when
// the codepage is the Unicode sentinel (§4.1 step 2, §4.9: "order of tests
// is normative because the probe mutates the effective encoding").
func StringContainsZeroBytes(buffer []byte) bool {
	zeroFound := false
	for _, b := range buffer {
		if !zeroFound {
			if b == 0 {
				zeroFound = true
			}
			continue
		}
		if b != 0 {
			return true
		}
	}
	return false
}

// effectiveIsASCII applies the Unicode-sentinel reclassification probe and
// returns the encoding to actually use for this buffer.
func effectiveIsASCII(data []byte, isASCIIHint bool, codepageNum uint32) bool {
	if isASCIIHint && codepageNum == CodepageUnicode {
		if StringContainsZeroBytes(data) {
			return false
		}
	}
	return isASCIIHint
}

// GetUTF8Size determines the UTF-8 encoded size of data without allocating
// the decoded string. A nil buffer always yields size 0.
func GetUTF8Size(data []byte, isASCIIHint bool, codepageNum uint32) (int, error) {
	if data == nil {
		return 0, nil
	}
	s, err := decodeToUTF8(data, isASCIIHint, codepageNum)
	if err != nil {
		return 0, err
	}
	return len(s), nil
}

// CopyToUTF8 decodes data into a UTF-8 string under the dispatch policy of
// §4.1 step 3.
func CopyToUTF8(data []byte, isASCIIHint bool, codepageNum uint32) (string, error) {
	if data == nil {
		return "", nil
	}
	return decodeToUTF8(data, isASCIIHint, codepageNum)
}

func decodeToUTF8(data []byte, isASCIIHint bool, codepageNum uint32) (string, error) {
	if len(data) > math.MaxInt {
		return "", pff.Newf(op, pff.KindArgument, "buffer size %d exceeds platform maximum", len(data))
	}
	isASCII := effectiveIsASCII(data, isASCIIHint, codepageNum)

	if !isASCII {
		return utf16LEToUTF8(data)
	}
	switch codepageNum {
	case CodepageUTF7:
		return utf7ToUTF8(data)
	case CodepageUnicode, CodepageUTF8:
		if !isValidUTF8(data) {
			return "", pff.Newf(op, pff.KindDecode, "invalid UTF-8 byte stream")
		}
		return string(data), nil
	default:
		enc, ok := codepage.Lookup(codepageNum)
		if !ok {
			if codepageNum != 0 {
				return "", pff.Newf(op, pff.KindDecode, "unsupported codepage %d", codepageNum)
			}
			// codepageNum == 0: the record set carries no ascii_codepage
			// hint at all, so fall back to sniffing the byte stream itself
			// rather than failing outright (§4.1's absent-hint tier).
			sniffed, sniffOK := codepage.Sniff(data)
			if !sniffOK {
				return "", pff.Newf(op, pff.KindDecode, "unsupported codepage %d", codepageNum)
			}
			enc = sniffed
		}
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", pff.Wrap(op, pff.KindDecode, err)
		}
		return string(out), nil
	}
}

func isValidUTF8(data []byte) bool {
	return utf8.Valid(data)
}

// utf16LEToUTF8 decodes a UTF-16LE byte stream (no BOM) to a UTF-8 string.
func utf16LEToUTF8(data []byte) (string, error) {
	dec := textunicode.UTF16(textunicode.LittleEndian, textunicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", pff.Wrap(op, pff.KindDecode, err)
	}
	return string(out), nil
}

// utf16Encode converts a Go string to a UTF-16 (little-endian semantics
// are the caller's concern; this returns native uint16 code units) slice.
func utf16Encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// GetUTF16Size determines the UTF-16 (code unit count) size of data.
func GetUTF16Size(data []byte, isASCIIHint bool, codepageNum uint32) (int, error) {
	if data == nil {
		return 0, nil
	}
	units, err := CopyToUTF16(data, isASCIIHint, codepageNum)
	if err != nil {
		return 0, err
	}
	return len(units), nil
}

// CopyToUTF16 decodes data into a slice of UTF-16 code units under the
// same dispatch policy as CopyToUTF8.
func CopyToUTF16(data []byte, isASCIIHint bool, codepageNum uint32) ([]uint16, error) {
	if data == nil {
		return nil, nil
	}
	isASCII := effectiveIsASCII(data, isASCIIHint, codepageNum)
	if !isASCII {
		if len(data)%2 != 0 {
			return nil, pff.Newf(op, pff.KindDecode, "odd-length UTF-16LE buffer")
		}
		units := make([]uint16, len(data)/2)
		for i := range units {
			units[i] = binary.LittleEndian.Uint16(data[i*2 : i*2+2])
		}
		return units, nil
	}
	s, err := decodeToUTF8(data, isASCIIHint, codepageNum)
	if err != nil {
		return nil, err
	}
	return utf16Encode(s), nil
}

// GetBinarySize returns the binary size of data; a nil buffer yields 0.
func GetBinarySize(data []byte) int {
	if data == nil {
		return 0
	}
	return len(data)
}

// CopyToBinary copies data verbatim. A nil buffer yields a nil slice.
func CopyToBinary(data []byte) []byte {
	if data == nil {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

// CopyTo32Bit interprets a 4-byte little-endian buffer as a uint32.
func CopyTo32Bit(data []byte) (uint32, error) {
	if data == nil {
		return 0, pff.Newf(op, pff.KindArgument, "invalid value data")
	}
	if len(data) != 4 {
		return 0, pff.Newf(op, pff.KindDecode, "invalid value data size %d, want 4", len(data))
	}
	return binary.LittleEndian.Uint32(data), nil
}

// CopyTo64Bit interprets an 8-byte little-endian buffer as a uint64.
func CopyTo64Bit(data []byte) (uint64, error) {
	if data == nil {
		return 0, pff.Newf(op, pff.KindArgument, "invalid value data")
	}
	if len(data) != 8 {
		return 0, pff.Newf(op, pff.KindDecode, "invalid value data size %d, want 8", len(data))
	}
	return binary.LittleEndian.Uint64(data), nil
}

// Filetime returns a raw filetime (u64 100ns ticks since 1601-01-01 UTC)
// unchanged. Neither this package nor recordentry converts it to
// time.Time: recordentry's AsFiletime also returns the raw uint64, and the
// only time.Time conversion in the module is pff/message's, for its
// summary fields.
func Filetime(raw uint64) (ticksSince1601 uint64) { return raw }

// Floatingtime reinterprets an 8-byte little-endian IEEE-754 buffer as the
// "days since 1899-12-30" floatingtime value.
func Floatingtime(data []byte) (float64, error) {
	bits, err := CopyTo64Bit(data)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// Double reinterprets an 8-byte little-endian IEEE-754 buffer as a double.
func Double(data []byte) (float64, error) {
	bits, err := CopyTo64Bit(data)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}
