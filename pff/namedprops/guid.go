// Package namedprops is the registry of well-known MAPI named-property
// GUIDs (§5, supplemented feature): PS_MAPI, PS_PUBLIC_STRINGS,
// PS_INTERNET_HEADERS and the rest of the property sets MS-OXPROPS
// assigns fixed GUIDs to. The distilled spec's name-to-id map (§4.4)
// describes the binding shape but never names these constants; this
// package gives callers the well-known GUIDs so a pff/nameid.Map lookup
// can be expressed as namedprops.PSPublicStrings rather than a bare literal.
package namedprops

import "github.com/google/uuid"

// Well-known MAPI named-property set GUIDs, from MS-OXPROPS §1.3.2.
var (
	PSMAPI             = uuid.MustParse("00020328-0000-0000-C000-000000000046")
	PSPublicStrings    = uuid.MustParse("00020329-0000-0000-C000-000000000046")
	PSInternetHeaders  = uuid.MustParse("00020386-0000-0000-C000-000000000046")
	PSCommon           = uuid.MustParse("00062008-0000-0000-C000-000000000046")
	PSAppointment      = uuid.MustParse("00062002-0000-0000-C000-000000000046")
	PSTask             = uuid.MustParse("00062003-0000-0000-C000-000000000046")
	PSAddress          = uuid.MustParse("00062004-0000-0000-C000-000000000046")
	PSUnifiedMessaging = uuid.MustParse("4442858E-A9E3-4E80-B900-317A210CC15B")
)

// Name returns a human-readable label for a well-known GUID, or "" if the
// GUID is not one of the registered property sets. Intended for
// diagnostics (cmd/pffdump) rather than lookup.
func Name(guid uuid.UUID) string {
	switch guid {
	case PSMAPI:
		return "PS_MAPI"
	case PSPublicStrings:
		return "PS_PUBLIC_STRINGS"
	case PSInternetHeaders:
		return "PS_INTERNET_HEADERS"
	case PSCommon:
		return "PS_COMMON"
	case PSAppointment:
		return "PS_APPOINTMENT"
	case PSTask:
		return "PS_TASK"
	case PSAddress:
		return "PS_ADDRESS"
	case PSUnifiedMessaging:
		return "PS_UNIFIED_MESSAGING"
	default:
		return ""
	}
}
