package nsapi

import (
	"fmt"
	"net/url"
)

// Kind is one of the API's public resource kinds.
type Kind int

const (
	// KindWorld queries world-wide statistics.
	KindWorld Kind = iota
	// KindNation queries a single nation.
	KindNation
	// KindRegion queries a single region.
	KindRegion
	// KindWA queries a World Assembly council.
	KindWA
)

// Kinds lists every kind in ledger order.
var Kinds = []Kind{KindNation, KindRegion, KindWorld, KindWA}

func (k Kind) String() string {
	switch k {
	case KindWorld:
		return "world"
	case KindNation:
		return "nation"
	case KindRegion:
		return "region"
	case KindWA:
		return "wa"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// param is the query parameter that selects the resource, empty for world.
func (k Kind) param() string {
	switch k {
	case KindNation, KindRegion, KindWA:
		return k.String()
	default:
		return ""
	}
}

// kindOf classifies a request URL by its selector parameter. Anything the
// gate cannot classify is counted as a world request.
func kindOf(rawURL string) Kind {
	u, err := url.Parse(rawURL)
	if err != nil {
		return KindWorld
	}
	q := u.Query()
	for _, k := range []Kind{KindNation, KindRegion, KindWA} {
		if q.Has(k.param()) {
			return k
		}
	}
	return KindWorld
}
