// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

// Package inspect holds the detail panel state and view models for the
// trip graph. Selections come in through graph.Enrich callbacks.
package inspect

import (
	"strconv"
	"strings"

	"github.com/nextrip/core/internal/graph"
	"github.com/nextrip/core/internal/model"
)

// Inspector keeps two independent selection slots: one for visit and
// transport nodes, one for lodging. Selecting into one slot leaves the
// other untouched, both start empty and are cleared explicitly.
type Inspector struct {
	visit   *graph.Node
	lodging *graph.Node
}

// Select routes a node into its slot. Container nodes are ignored.
func (i *Inspector) Select(n graph.Node) {
	switch n.Kind {
	case graph.KindLocation, graph.KindTransportConnector:
		i.visit = &n
	case graph.KindLodgingConnector:
		i.lodging = &n
	}
}

func (i *Inspector) Visit() (graph.Node, bool) {
	if i.visit == nil {
		return graph.Node{}, false
	}
	return *i.visit, true
}

func (i *Inspector) Lodging() (graph.Node, bool) {
	if i.lodging == nil {
		return graph.Node{}, false
	}
	return *i.lodging, true
}

func (i *Inspector) CloseVisit()   { i.visit = nil }
func (i *Inspector) CloseLodging() { i.lodging = nil }

// Reset clears both slots, used when a new voyage is loaded.
func (i *Inspector) Reset() {
	i.visit = nil
	i.lodging = nil
}

// maxComfortStars is the size of the comfort scale.
const maxComfortStars = 3

// ComfortStars maps the comfort tier to filled and empty stars. An
// unrecognized tier renders like medium.
func ComfortStars(c model.Comfort) (filled, empty int) {
	switch c {
	case model.ComfortHigh:
		filled = 3
	case model.ComfortMedium:
		filled = 2
	case model.ComfortLow:
		filled = 1
	default:
		filled = 2
	}
	return filled, maxComfortStars - filled
}

// LodgingStarCount extracts the leading integer of the free-text category
// label ("4 étoiles" -> 4). Absent or unparseable labels default to 3.
func LodgingStarCount(categorie string) int {
	s := strings.TrimSpace(categorie)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 3
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 3
	}
	return n
}
