package nsapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const nationXML = `<?xml version="1.0" encoding="UTF-8"?>
<NATION id="testlandia">
<NAME>Testlandia</NAME>
<FULLNAME>The Hive Mind of Testlandia</FULLNAME>
<REGION>Testregionia</REGION>
<POPULATION>41920</POPULATION>
<UNSTATUS>WA Delegate</UNSTATUS>
<ENDORSEMENTS>kingdom_of_a,the_b, c_land</ENDORSEMENTS>
<FREEDOM>
<CIVILRIGHTS>Excellent</CIVILRIGHTS>
<ECONOMY>Strong</ECONOMY>
<POLITICALFREEDOM>Very Good</POLITICALFREEDOM>
</FREEDOM>
<CENSUS>
<SCALE id="0"><SCORE>54.12</SCORE><RANK>1204</RANK><RRANK>3</RRANK></SCALE>
<SCALE id="46"><SCORE>2.5</SCORE><RANK>99</RANK><RRANK>1</RRANK></SCALE>
</CENSUS>
</NATION>`

func TestDecodeNation(t *testing.T) {
	var n Nation
	require.NoError(t, decodeXML(strings.NewReader(nationXML), &n))

	require.Equal(t, "testlandia", n.ID)
	require.Equal(t, "Testlandia", n.Name)
	require.Equal(t, "The Hive Mind of Testlandia", n.FullName)
	require.Equal(t, int64(41920), n.Population)
	require.Equal(t, "WA Delegate", n.WAStatus)
	require.Equal(t, CommaList{"kingdom_of_a", "the_b", "c_land"}, n.Endorsements)
	require.NotNil(t, n.Freedom)
	require.Equal(t, "Very Good", n.Freedom.PoliticalFreedom)
	require.Len(t, n.Census, 2)
	require.Equal(t, 46, n.Census[1].ID)
	require.InDelta(t, 54.12, n.Census[0].Score, 1e-9)
	require.Equal(t, 3, n.Census[0].RegionRank)
}

func TestDecodeRegion(t *testing.T) {
	doc := `<REGION id="the_pacific">
<NAME>The Pacific</NAME>
<NUMNATIONS>3</NUMNATIONS>
<NATIONS>a:b:c</NATIONS>
<DELEGATE>b</DELEGATE>
<TAGS><TAG>Feeder</TAG><TAG>Large</TAG></TAGS>
</REGION>`

	var r Region
	require.NoError(t, decodeXML(strings.NewReader(doc), &r))
	require.Equal(t, "the_pacific", r.ID)
	require.Equal(t, 3, r.NumNations)
	require.Equal(t, ColonList{"a", "b", "c"}, r.Nations)
	require.Equal(t, []string{"Feeder", "Large"}, r.Tags)
}

func TestDecodeEmptyList(t *testing.T) {
	var w World
	require.NoError(t, decodeXML(strings.NewReader(`<WORLD><NEWNATIONS>  </NEWNATIONS></WORLD>`), &w))
	require.Empty(t, w.NewNations)
}

func TestDecodeWA(t *testing.T) {
	doc := `<WA council="1">
<NUMNATIONS>27000</NUMNATIONS>
<NUMDELEGATES>410</NUMDELEGATES>
<RESOLUTION>
<NAME>Repeal &quot;Something&quot;</NAME>
<CATEGORY>Repeal</CATEGORY>
<PROPOSED_BY>testlandia</PROPOSED_BY>
<TOTAL_VOTES_FOR>9000</TOTAL_VOTES_FOR>
<TOTAL_VOTES_AGAINST>1200</TOTAL_VOTES_AGAINST>
</RESOLUTION>
</WA>`

	var wa WA
	require.NoError(t, decodeXML(strings.NewReader(doc), &wa))
	require.Equal(t, 1, wa.Council)
	require.Equal(t, 410, wa.NumDelegates)
	require.NotNil(t, wa.Resolution)
	require.Equal(t, `Repeal "Something"`, wa.Resolution.Name)
	require.Equal(t, 9000, wa.Resolution.TotalVotesFor)
}

func TestDecodeWindows1252(t *testing.T) {
	// 0xE9 is é and 0x80 is the euro sign in windows-1252.
	doc := "<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n" +
		"<NATION id=\"caf\xe9\"><NAME>Caf\xe9</NAME><CURRENCY>\x80uro</CURRENCY></NATION>"

	var n Nation
	require.NoError(t, decodeXML(strings.NewReader(doc), &n))
	require.Equal(t, "Café", n.Name)
	require.Equal(t, "€uro", n.Currency)
}

func TestDecodeUnsupportedCharset(t *testing.T) {
	doc := `<?xml version="1.0" encoding="shift_jis"?><WORLD></WORLD>`

	var w World
	err := decodeXML(strings.NewReader(doc), &w)
	require.Error(t, err)
	require.Contains(t, err.Error(), "shift_jis")
}
