// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package sample

import (
	"testing"

	"github.com/nextrip/core/internal/graph"
)

func TestVoyageDecodes(t *testing.T) {
	voyage, err := Voyage()
	if err != nil {
		t.Fatalf("Voyage: %v", err)
	}
	if len(voyage.Villes) != 2 {
		t.Fatalf("villes = %d, want 2", len(voyage.Villes))
	}
	if voyage.Villes[0].Jours[0].Hebergement == nil {
		t.Error("expected lodging on the first day")
	}
	if len(voyage.Transports) != 1 {
		t.Errorf("transports = %d, want 1", len(voyage.Transports))
	}

	// Each call hands out an independent copy.
	other, err := Voyage()
	if err != nil {
		t.Fatalf("Voyage: %v", err)
	}
	other.Villes[0].Nom = "changed"
	if voyage.Villes[0].Nom == "changed" {
		t.Error("copies must not share city data")
	}
}

func TestVoyageLaysOut(t *testing.T) {
	voyage, err := Voyage()
	if err != nil {
		t.Fatalf("Voyage: %v", err)
	}
	g := graph.Layout(voyage, graph.DefaultConfig())
	if len(g.Nodes) == 0 || len(g.Edges) == 0 {
		t.Fatalf("expected a populated graph, got %d nodes %d edges", len(g.Nodes), len(g.Edges))
	}

	var transports int
	for _, n := range g.Nodes {
		if n.Kind == graph.KindTransportConnector {
			transports++
		}
	}
	if transports != 1 {
		t.Errorf("transport nodes = %d, want 1", transports)
	}
}
