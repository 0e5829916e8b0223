package nsapi

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Nation is the decoded response to a nation query. Fields for shards
// that were not requested keep their zero value.
type Nation struct {
	XMLName      xml.Name      `xml:"NATION"`
	ID           string        `xml:"id,attr"`
	Name         string        `xml:"NAME"`
	FullName     string        `xml:"FULLNAME"`
	Type         string        `xml:"TYPE"`
	Motto        string        `xml:"MOTTO"`
	Category     string        `xml:"CATEGORY"`
	WAStatus     string        `xml:"UNSTATUS"`
	Region       string        `xml:"REGION"`
	Population   int64         `xml:"POPULATION"` // millions
	Flag         string        `xml:"FLAG"`
	Currency     string        `xml:"CURRENCY"`
	Animal       string        `xml:"ANIMAL"`
	Capital      string        `xml:"CAPITAL"`
	Leader       string        `xml:"LEADER"`
	Religion     string        `xml:"RELIGION"`
	Influence    string        `xml:"INFLUENCE"`
	Founded      string        `xml:"FOUNDED"`
	FirstLogin   int64         `xml:"FIRSTLOGIN"`
	LastActivity string        `xml:"LASTACTIVITY"`
	Endorsements CommaList     `xml:"ENDORSEMENTS"`
	Freedom      *Freedom      `xml:"FREEDOM"`
	Census       []CensusScale `xml:"CENSUS>SCALE"`
}

// Freedom holds the three descriptive freedom ratings of a nation.
type Freedom struct {
	CivilRights      string `xml:"CIVILRIGHTS"`
	Economy          string `xml:"ECONOMY"`
	PoliticalFreedom string `xml:"POLITICALFREEDOM"`
}

// CensusScale is one census score.
type CensusScale struct {
	ID         int     `xml:"id,attr"`
	Score      float64 `xml:"SCORE"`
	Rank       int     `xml:"RANK"`
	RegionRank int     `xml:"RRANK"`
}

// Region is the decoded response to a region query.
type Region struct {
	XMLName       xml.Name      `xml:"REGION"`
	ID            string        `xml:"id,attr"`
	Name          string        `xml:"NAME"`
	NumNations    int           `xml:"NUMNATIONS"`
	Nations       ColonList     `xml:"NATIONS"`
	Delegate      string        `xml:"DELEGATE"`
	DelegateVotes int           `xml:"DELEGATEVOTES"`
	Founder       string        `xml:"FOUNDER"`
	Power         string        `xml:"POWER"`
	Flag          string        `xml:"FLAG"`
	Factbook      string        `xml:"FACTBOOK"`
	Tags          []string      `xml:"TAGS>TAG"`
	Census        []CensusScale `xml:"CENSUS>SCALE"`
}

// World is the decoded response to a world query.
type World struct {
	XMLName        xml.Name      `xml:"WORLD"`
	NumNations     int           `xml:"NUMNATIONS"`
	NumRegions     int           `xml:"NUMREGIONS"`
	FeaturedRegion string        `xml:"FEATUREDREGION"`
	NewNations     CommaList     `xml:"NEWNATIONS"`
	Census         []CensusScale `xml:"CENSUS>SCALE"`
}

// WA is the decoded response to a World Assembly query.
type WA struct {
	XMLName        xml.Name    `xml:"WA"`
	Council        int         `xml:"council,attr"`
	NumNations     int         `xml:"NUMNATIONS"`
	NumDelegates   int         `xml:"NUMDELEGATES"`
	Delegates      CommaList   `xml:"DELEGATES"`
	Members        CommaList   `xml:"MEMBERS"`
	Resolution     *Resolution `xml:"RESOLUTION"`
	LastResolution string      `xml:"LASTRESOLUTION"`
}

// Resolution is the proposal currently at vote.
type Resolution struct {
	Name              string `xml:"NAME"`
	Category          string `xml:"CATEGORY"`
	ProposedBy        string `xml:"PROPOSED_BY"`
	Created           int64  `xml:"CREATED"`
	TotalVotesFor     int    `xml:"TOTAL_VOTES_FOR"`
	TotalVotesAgainst int    `xml:"TOTAL_VOTES_AGAINST"`
}

// CommaList decodes a comma-separated element into its items.
type CommaList []string

func (l *CommaList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	items, err := decodeList(d, start, ",")
	*l = items
	return err
}

// ColonList decodes a colon-separated element into its items.
type ColonList []string

func (l *ColonList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	items, err := decodeList(d, start, ":")
	*l = items
	return err
}

func decodeList(d *xml.Decoder, start xml.StartElement, sep string) ([]string, error) {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, sep)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// decodeXML decodes one API document into v. The API has served legacy
// single-byte encodings, so those are translated to UTF-8 first.
func decodeXML(r io.Reader, v any) error {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader
	return d.Decode(v)
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "utf-8", "utf8", "us-ascii":
		return input, nil
	default:
		return nil, fmt.Errorf("nsapi: unsupported charset %q", label)
	}
}
