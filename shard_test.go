package nsapi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const apiBase = "https://www.nationstates.net/cgi-bin/api.cgi"

func TestRequestURL(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want string
	}{
		{
			"nation",
			NationRequest("Testlandia", NationName, NationPopulation),
			apiBase + "?nation=testlandia&q=name+population",
		},
		{
			"nation without shards",
			NationRequest("testlandia"),
			apiBase + "?nation=testlandia",
		},
		{
			"region with spaces",
			RegionRequest("The Pacific", RegionNumNations, RegionDelegate),
			apiBase + "?region=the_pacific&q=numnations+delegate",
		},
		{
			"world with census params",
			WorldRequest(WorldCensus).WithParam("scale", "65").WithParam("mode", "score"),
			apiBase + "?q=census&mode=score&scale=65",
		},
		{
			"security council",
			WARequest(SecurityCouncil, WAResolution),
			apiBase + "?wa=2&q=resolution",
		},
		{
			"pinned version",
			Request{Kind: KindWorld, Shards: []string{"numnations"}, Version: 12},
			apiBase + "?q=numnations&v=12",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.req.URL(apiBase)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.req.Kind, kindOf(got))
		})
	}
}

func TestRequestValidate(t *testing.T) {
	require.Error(t, NationRequest("  ", NationName).Validate())
	require.Error(t, RegionRequest("").Validate())
	require.ErrorIs(t, WorldRequest().Validate(), errNoShards)
	require.ErrorIs(t, WARequest(GeneralAssembly).Validate(), errNoShards)
	require.Error(t, WARequest(Council(3), WANumNations).Validate())
	require.Error(t, Request{Kind: Kind(9)}.Validate())
}

func TestRequestURLRejectsRelativeBase(t *testing.T) {
	_, err := WorldRequest(WorldNumNations).URL("/cgi-bin/api.cgi")
	require.Error(t, err)
}

func TestWithParamDoesNotAlias(t *testing.T) {
	base := WorldRequest(WorldCensus).WithParam("scale", "1")
	a := base.WithParam("mode", "score")
	b := base.WithParam("mode", "rank")

	require.Equal(t, []string{"1"}, base.Params["scale"])
	require.Empty(t, base.Params["mode"])
	require.Equal(t, "score", a.Params.Get("mode"))
	require.Equal(t, "rank", b.Params.Get("mode"))
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "the_east_pacific", NormalizeName("  The East Pacific "))
	require.Equal(t, "testlandia", NormalizeName("testlandia"))
}

func TestKindOf(t *testing.T) {
	require.Equal(t, KindNation, kindOf(apiBase+"?nation=x&q=name"))
	require.Equal(t, KindRegion, kindOf(apiBase+"?region=x"))
	require.Equal(t, KindWA, kindOf(apiBase+"?wa=1&q=members"))
	require.Equal(t, KindWorld, kindOf(apiBase+"?q=numnations"))
	require.Equal(t, KindWorld, kindOf("%zz"))
}
