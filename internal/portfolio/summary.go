// Package portfolio holds the client-side model of the portfolio: the
// in-memory holdings book the dashboard renders from, and the summary
// figures derived from it.
package portfolio

import (
	"sort"
	"strings"

	"github.com/jonandersen/folio/pkg/folioapi"
)

// DefaultSector is the sector used for holdings without an industry.
const DefaultSector = "Other"

// SectorCount is the number of holdings in one sector.
type SectorCount struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

// Summary aggregates a list of holdings.
type Summary struct {
	TotalValue    float64       `json:"total_value"`
	TotalHoldings int           `json:"total_holdings"`
	Sectors       []SectorCount `json:"sectors"`
}

// ComputeSummary totals the value of holdings and groups them by industry.
// Sectors are ordered by count, largest first; equal counts keep the order in
// which the sector first appeared.
func ComputeSummary(holdings []folioapi.Holding) Summary {
	s := Summary{
		TotalHoldings: len(holdings),
		Sectors:       []SectorCount{},
	}

	index := make(map[string]int)
	for _, h := range holdings {
		s.TotalValue += h.Value()

		sector := strings.TrimSpace(h.Industry)
		if sector == "" {
			sector = DefaultSector
		}
		if i, ok := index[sector]; ok {
			s.Sectors[i].Count++
			continue
		}
		index[sector] = len(s.Sectors)
		s.Sectors = append(s.Sectors, SectorCount{Sector: sector, Count: 1})
	}

	sort.SliceStable(s.Sectors, func(i, j int) bool {
		return s.Sectors[i].Count > s.Sectors[j].Count
	})

	return s
}
