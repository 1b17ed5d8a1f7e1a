// Package codepage maps Windows codepage numbers, as stored in PFF record
// sets' ascii_codepage field, to golang.org/x/text encodings. It generalizes
// the teacher's (parsemsg.go extractData, PT_STRING8 branch) ad hoc
// chardet/charmap/charset fallback chain into a single lookup table plus an
// explicit sniff-only-when-unhinted fallback tier.
package codepage

import (
	"bytes"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// table is the direct Windows-codepage-number -> encoding.Encoding mapping,
// covering the codepages PFF containers commonly carry.
var table = map[uint32]encoding.Encoding{
	874:   charmap.Windows874,
	932:   japanese.ShiftJIS,
	936:   simplifiedchinese.GBK,
	949:   korean.EUCKR,
	950:   traditionalchinese.Big5,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	20127: encoding.Nop, // US-ASCII
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28605: charmap.ISO8859_15,
}

// Lookup resolves a Windows codepage number to an encoding.Encoding. It
// tries the direct table first, then htmlindex by the label ianaName
// builds; golang.org/x/net/html/charset is not consulted here. Codepage
// 1200 (Unicode) and 65001 (UTF-8) and 65000 (UTF-7) are handled upstream
// by the value-type decoder and never reach this function.
func Lookup(windowsCodepage uint32) (encoding.Encoding, bool) {
	if enc, ok := table[windowsCodepage]; ok {
		return enc, true
	}
	if enc, err := htmlindex.Get(ianaName(windowsCodepage)); err == nil {
		return enc, true
	}
	return nil, false
}

// ianaName produces the conventional "windows-XXXX" label htmlindex
// recognises for a given numeric Windows codepage.
func ianaName(windowsCodepage uint32) string {
	switch windowsCodepage {
	case 20127:
		return "us-ascii"
	default:
		return "windows-" + itoa(windowsCodepage)
	}
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Sniff runs chardet detection over data and, on a confident result, returns
// the matching encoding. It is only consulted when a record set's
// ascii_codepage hint is absent or zero — the teacher's extractData ran
// chardet unconditionally for every PT_STRING8 value; pffcore narrows that
// to the case where the codepage hint genuinely can't answer the question.
func Sniff(data []byte) (encoding.Encoding, bool) {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return sniffFallback(data)
	}
	switch strings.ToLower(result.Charset) {
	case "windows-1252":
		return charmap.Windows1252, true
	case "iso-8859-1":
		return charmap.ISO8859_1, true
	case "utf-8":
		return encoding.Nop, true
	default:
		if enc, err := charset.Lookup(result.Charset); err == nil && enc != nil {
			return enc, true
		}
		return sniffFallback(data)
	}
}

// sniffFallback mirrors the teacher's secondary fallback chain: try
// windows-1252 then iso-8859-1 via golang.org/x/net/html/charset labels,
// falling through to plain UTF-8 if neither label resolves.
func sniffFallback(data []byte) (encoding.Encoding, bool) {
	for _, label := range []string{"windows-1252", "iso-8859-1"} {
		if r, err := charset.NewReaderLabel(label, bytes.NewReader(data)); err == nil && r != nil {
			if enc, err2 := htmlindex.Get(label); err2 == nil {
				return enc, true
			}
		}
	}
	return nil, false
}
