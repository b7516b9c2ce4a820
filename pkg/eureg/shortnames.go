package eureg

// shortNames maps synthetic EU document ids to their common short names.
// The table is deliberately small: only acts routinely cited by name in
// Luxembourg legislation.
var shortNames = map[string]string{
	"regulation:2016/679":  "GDPR",
	"directive:1995/46":    "Data Protection Directive",
	"directive:2002/58":    "ePrivacy Directive",
	"directive:2016/1148":  "NIS Directive",
	"directive:2022/2555":  "NIS2 Directive",
	"regulation:2014/910":  "eIDAS",
	"regulation:2022/2065": "Digital Services Act",
	"regulation:2022/1925": "Digital Markets Act",
	"regulation:2024/1689": "AI Act",
	"directive:2014/65":    "MiFID II",
	"directive:2015/2366":  "PSD2",
	"directive:2019/790":   "Copyright Directive",
}

// ShortName returns the common short name for an EU document id, or ""
// when none is known.
func ShortName(euDocumentID string) string {
	return shortNames[euDocumentID]
}
