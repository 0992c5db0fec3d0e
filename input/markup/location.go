package markup

import (
	"github.com/npillmayer/weft/core"
)

// A Location is one of the eleven classifier states of the tokenizer.
type Location int8

const (
	LocChar         Location = iota // raw character data
	LocTag                          // inside <…>, outside quoted attributes
	LocTagAttSQ                     // single-quoted attribute value
	LocTagAttDQ                     // double-quoted attribute value
	LocComment                      // <!-- … -->
	LocCDATA                        // <![CDATA[ … ]]>
	LocDoctype                      // <!DOCTYPE …>
	LocDoctypeAttSQ                 // single-quoted literal in doctype
	LocDoctypeAttDQ                 // double-quoted literal in doctype
	LocPI                           // <? … ?>
	LocXMLDecl                      // <?xml … ?>
)

var locationNames = []string{
	"char", "tag", "tag-att-sq", "tag-att-dq", "comment", "CDATA",
	"doctype", "doctype-att-sq", "doctype-att-dq", "pi", "xml-decl",
}

func (loc Location) String() string {
	if int(loc) < 0 || int(loc) >= len(locationNames) {
		return "location-?"
	}
	return locationNames[loc]
}

// ParseLocation resolves a location name, as accepted on the command
// line, to its Location.
func ParseLocation(name string) (Location, error) {
	for i, n := range locationNames {
		if n == name {
			return Location(i), nil
		}
	}
	return LocChar, core.Error(core.EINVALID, "unknown tokenizer location %q", name)
}
