package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ryhazerus/nsapi"
)

// rows collects field/value pairs, dropping empty values so that shards
// which were not requested do not show up.
type rows []table.Row

func (r *rows) add(field, value string) {
	if value != "" {
		*r = append(*r, table.Row{field, value})
	}
}

func (r *rows) addInt(field string, v int64) {
	if v != 0 {
		r.add(field, humanize.Comma(v))
	}
}

func (r *rows) addList(field string, items []string) {
	if len(items) == 0 {
		return
	}
	const limit = 10
	shown := items
	if len(shown) > limit {
		shown = shown[:limit]
	}
	v := strings.Join(shown, ", ")
	if len(items) > limit {
		v += fmt.Sprintf(" (+%d more)", len(items)-limit)
	}
	r.add(field, v)
}

func (r *rows) addCensus(scales []nsapi.CensusScale) {
	for _, s := range scales {
		v := humanize.Commaf(s.Score)
		if s.Rank > 0 {
			v += fmt.Sprintf(" (rank %s)", humanize.Comma(int64(s.Rank)))
		}
		r.add("Census "+strconv.Itoa(s.ID), v)
	}
}

func render(w io.Writer, title string, r rows) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows(r)
	t.Render()
}

func nationRows(n *nsapi.Nation) rows {
	var r rows
	r.add("Name", n.Name)
	r.add("Full name", n.FullName)
	r.add("Type", n.Type)
	r.add("Motto", n.Motto)
	r.add("Category", n.Category)
	r.add("WA status", n.WAStatus)
	r.add("Region", n.Region)
	if n.Population > 0 {
		r.add("Population", humanize.Comma(n.Population)+" million")
	}
	r.add("Currency", n.Currency)
	r.add("Animal", n.Animal)
	r.add("Capital", n.Capital)
	r.add("Leader", n.Leader)
	r.add("Religion", n.Religion)
	r.add("Influence", n.Influence)
	r.add("Founded", n.Founded)
	r.add("Last activity", n.LastActivity)
	r.addList("Endorsements", n.Endorsements)
	if f := n.Freedom; f != nil {
		r.add("Civil rights", f.CivilRights)
		r.add("Economy", f.Economy)
		r.add("Political freedom", f.PoliticalFreedom)
	}
	r.addCensus(n.Census)
	return r
}

func regionRows(g *nsapi.Region) rows {
	var r rows
	r.add("Name", g.Name)
	r.addInt("Nations", int64(g.NumNations))
	r.addList("Members", g.Nations)
	r.add("Delegate", g.Delegate)
	r.addInt("Delegate votes", int64(g.DelegateVotes))
	r.add("Founder", g.Founder)
	r.add("Power", g.Power)
	r.addList("Tags", g.Tags)
	r.addCensus(g.Census)
	return r
}

func worldRows(w *nsapi.World) rows {
	var r rows
	r.addInt("Nations", int64(w.NumNations))
	r.addInt("Regions", int64(w.NumRegions))
	r.add("Featured region", w.FeaturedRegion)
	r.addList("New nations", w.NewNations)
	r.addCensus(w.Census)
	return r
}

func waRows(wa *nsapi.WA) rows {
	var r rows
	r.addInt("Members", int64(wa.NumNations))
	r.addInt("Delegates", int64(wa.NumDelegates))
	r.addList("Delegate list", wa.Delegates)
	r.addList("Member list", wa.Members)
	if res := wa.Resolution; res != nil {
		r.add("At vote", res.Name)
		r.add("Category", res.Category)
		r.add("Proposed by", res.ProposedBy)
		r.add("For", humanize.Comma(int64(res.TotalVotesFor)))
		r.add("Against", humanize.Comma(int64(res.TotalVotesAgainst)))
	}
	r.add("Last resolution", wa.LastResolution)
	return r
}

func councilName(c int) string {
	switch nsapi.Council(c) {
	case nsapi.GeneralAssembly:
		return "General Assembly"
	case nsapi.SecurityCouncil:
		return "Security Council"
	default:
		return "World Assembly"
	}
}
