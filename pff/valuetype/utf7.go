package valuetype

import (
	"unicode/utf16"

	"github.com/pffcore/pffcore/pff"
)

// utf7ToUTF8 decodes a buffer encoded per RFC 2152 UTF-7 (codepage 65000,
// §4.1 step 3) into a UTF-8 string. golang.org/x/text ships no UTF-7
// decoder (see DESIGN.md), so this is a direct, minimal RFC 2152
// implementation: '+' opens a modified-base64 run of UTF-16BE code units,
// terminated by any non-base64 byte; a bare "+-" encodes a literal '+'.
func utf7ToUTF8(data []byte) (string, error) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	var decodeTable [256]int8
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = int8(i)
	}

	var out []rune
	i := 0
	for i < len(data) {
		b := data[i]
		if b != '+' {
			out = append(out, rune(b))
			i++
			continue
		}
		// Shift sequence.
		i++
		if i < len(data) && data[i] == '-' {
			out = append(out, '+')
			i++
			continue
		}
		var bitBuf uint32
		var bitCount uint
		var units []uint16
		for i < len(data) {
			v := decodeTable[data[i]]
			if v < 0 {
				break
			}
			bitBuf = bitBuf<<6 | uint32(v)
			bitCount += 6
			i++
			if bitCount >= 16 {
				bitCount -= 16
				units = append(units, uint16(bitBuf>>bitCount))
			}
		}
		if i < len(data) && data[i] == '-' {
			i++
		}
		if len(units) == 0 && bitBuf != 0 {
			return "", pff.Newf("valuetype.utf7", pff.KindDecode, "malformed UTF-7 shift sequence")
		}
		out = append(out, utf16.Decode(units)...)
	}
	return string(out), nil
}
