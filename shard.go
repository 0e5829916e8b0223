package nsapi

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// NationShard selects a piece of nation data.
type NationShard string

const (
	NationName         NationShard = "name"
	NationFullName     NationShard = "fullname"
	NationType         NationShard = "type"
	NationMotto        NationShard = "motto"
	NationCategory     NationShard = "category"
	NationWAStatus     NationShard = "wa"
	NationRegion       NationShard = "region"
	NationPopulation   NationShard = "population"
	NationFlag         NationShard = "flag"
	NationCurrency     NationShard = "currency"
	NationAnimal       NationShard = "animal"
	NationCapital      NationShard = "capital"
	NationLeader       NationShard = "leader"
	NationReligion     NationShard = "religion"
	NationInfluence    NationShard = "influence"
	NationFounded      NationShard = "founded"
	NationFirstLogin   NationShard = "firstlogin"
	NationLastActivity NationShard = "lastactivity"
	NationEndorsements NationShard = "endorsements"
	NationFreedom      NationShard = "freedom"
	NationCensus       NationShard = "census"
)

// RegionShard selects a piece of region data.
type RegionShard string

const (
	RegionName          RegionShard = "name"
	RegionNumNations    RegionShard = "numnations"
	RegionNations       RegionShard = "nations"
	RegionDelegate      RegionShard = "delegate"
	RegionDelegateVotes RegionShard = "delegatevotes"
	RegionFounder       RegionShard = "founder"
	RegionPower         RegionShard = "power"
	RegionFlag          RegionShard = "flag"
	RegionFactbook      RegionShard = "factbook"
	RegionTags          RegionShard = "tags"
	RegionCensus        RegionShard = "census"
)

// WorldShard selects a piece of world data.
type WorldShard string

const (
	WorldNumNations     WorldShard = "numnations"
	WorldNumRegions     WorldShard = "numregions"
	WorldFeaturedRegion WorldShard = "featuredregion"
	WorldNewNations     WorldShard = "newnations"
	WorldCensus         WorldShard = "census"
)

// WAShard selects a piece of World Assembly data.
type WAShard string

const (
	WANumNations     WAShard = "numnations"
	WANumDelegates   WAShard = "numdelegates"
	WADelegates      WAShard = "delegates"
	WAMembers        WAShard = "members"
	WAResolution     WAShard = "resolution"
	WALastResolution WAShard = "lastresolution"
)

// Council is a World Assembly chamber.
type Council int

const (
	GeneralAssembly Council = 1
	SecurityCouncil Council = 2
)

var errNoShards = errors.New("nsapi: at least one shard is required")

// Request describes one public API query. Build it with NationRequest,
// RegionRequest, WorldRequest or WARequest.
type Request struct {
	Kind   Kind
	Target string
	Shards []string
	// Params carries shard parameters such as census "scale".
	Params url.Values
	// Version pins the API version; zero leaves it to the client.
	Version int
}

// NationRequest queries the named nation.
func NationRequest(name string, shards ...NationShard) Request {
	return Request{Kind: KindNation, Target: NormalizeName(name), Shards: shardNames(shards)}
}

// RegionRequest queries the named region.
func RegionRequest(name string, shards ...RegionShard) Request {
	return Request{Kind: KindRegion, Target: NormalizeName(name), Shards: shardNames(shards)}
}

// WorldRequest queries world-wide data.
func WorldRequest(shards ...WorldShard) Request {
	return Request{Kind: KindWorld, Shards: shardNames(shards)}
}

// WARequest queries a World Assembly council.
func WARequest(c Council, shards ...WAShard) Request {
	return Request{Kind: KindWA, Target: strconv.Itoa(int(c)), Shards: shardNames(shards)}
}

// WithParam returns a copy of r with a shard parameter added.
func (r Request) WithParam(key, value string) Request {
	params := make(url.Values, len(r.Params)+1)
	for k, vs := range r.Params {
		params[k] = append([]string(nil), vs...)
	}
	params.Add(key, value)
	r.Params = params
	return r
}

// Validate checks that r can be turned into a URL.
func (r Request) Validate() error {
	switch r.Kind {
	case KindNation, KindRegion:
		if r.Target == "" {
			return fmt.Errorf("nsapi: %s name is required", r.Kind)
		}
	case KindWA:
		if r.Target != "1" && r.Target != "2" {
			return fmt.Errorf("nsapi: invalid WA council %q", r.Target)
		}
		if len(r.Shards) == 0 {
			return errNoShards
		}
	case KindWorld:
		if len(r.Shards) == 0 {
			return errNoShards
		}
	default:
		return fmt.Errorf("nsapi: unknown request kind %s", r.Kind)
	}
	return nil
}

// URL encodes r against the API endpoint base, e.g.
// base?nation=testlandia&q=name+population&v=12.
func (r Request) URL(base string) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("nsapi: parse base url: %w", err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("nsapi: base url %q is not absolute", base)
	}

	var parts []string
	if p := r.Kind.param(); p != "" {
		parts = append(parts, p+"="+url.QueryEscape(r.Target))
	}
	if len(r.Shards) > 0 {
		q := make([]string, len(r.Shards))
		for i, s := range r.Shards {
			q[i] = url.QueryEscape(s)
		}
		parts = append(parts, "q="+strings.Join(q, "+"))
	}
	if len(r.Params) > 0 {
		parts = append(parts, r.Params.Encode())
	}
	if r.Version > 0 {
		parts = append(parts, "v="+strconv.Itoa(r.Version))
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String(), nil
}

// NormalizeName converts a display name to the API's id form:
// "The Pacific" becomes "the_pacific".
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func shardNames[S ~string](shards []S) []string {
	if len(shards) == 0 {
		return nil
	}
	out := make([]string, len(shards))
	for i, s := range shards {
		out[i] = string(s)
	}
	return out
}
