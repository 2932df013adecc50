package vehicle

import (
	"sort"

	"github.com/openbay/quote-engine/pkg/fn"
)

// Jurisdiction is a supported plate-issuing region.
type Jurisdiction struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// jurisdictionNames maps region codes to display names: the 50 US states
// plus the District of Columbia.
var jurisdictionNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut",
	"DE": "Delaware", "DC": "District of Columbia", "FL": "Florida",
	"GA": "Georgia", "HI": "Hawaii", "ID": "Idaho", "IL": "Illinois",
	"IN": "Indiana", "IA": "Iowa", "KS": "Kansas", "KY": "Kentucky",
	"LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana",
	"NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire",
	"NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania",
	"RI": "Rhode Island", "SC": "South Carolina", "SD": "South Dakota",
	"TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
}

// Jurisdictions returns all supported jurisdictions sorted by code.
func Jurisdictions() []Jurisdiction {
	codes := fn.Keys(jurisdictionNames)
	sort.Strings(codes)
	return fn.Map(codes, func(c string) Jurisdiction {
		return Jurisdiction{Code: c, DisplayName: jurisdictionNames[c]}
	})
}

// SupportedJurisdiction reports whether a region code is supported.
func SupportedJurisdiction(code string) bool {
	_, ok := jurisdictionNames[code]
	return ok
}
