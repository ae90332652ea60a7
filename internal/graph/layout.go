// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package graph

import (
	"fmt"

	"github.com/nextrip/core/internal/model"
)

// Config tunes the layout geometry. Start from DefaultConfig, zero numeric
// fields fall back to their defaults inside Layout.
type Config struct {
	LocationWidth   float64
	LocationSpacing float64
	DayPadding      float64
	CitySpacing     float64

	ShowTransportNodes bool
	UniformDayWidth    bool
	AnimateEdges       bool
}

func DefaultConfig() Config {
	return Config{
		LocationWidth:      220,
		LocationSpacing:    40,
		DayPadding:         80,
		CitySpacing:        150,
		ShowTransportNodes: true,
		UniformDayWidth:    true,
		AnimateEdges:       true,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LocationWidth <= 0 {
		c.LocationWidth = d.LocationWidth
	}
	if c.LocationSpacing <= 0 {
		c.LocationSpacing = d.LocationSpacing
	}
	if c.DayPadding <= 0 {
		c.DayPadding = d.DayPadding
	}
	if c.CitySpacing <= 0 {
		c.CitySpacing = d.CitySpacing
	}
	return c
}

// Fixed geometry shared by every voyage.
const (
	originY         = 100
	cityX           = 400
	cityWidthMargin = 100
	cityBaseHeight  = 140
	daySlotHeight   = 300
	dayHeight       = 270
	dayStartY       = 120
	locationY       = 70
	transportOffset = 75
	transportHalf   = 32
	lodgingGap      = 40
	lodgingHalf     = 32
	connectorZIndex = 1000
)

// cursor is the accumulator threaded through city iteration: the running
// vertical offset and the edge id sequence.
type cursor struct {
	y       float64
	edgeSeq int
}

func (c *cursor) nextEdgeID() string {
	c.edgeSeq++
	return fmt.Sprintf("e%d", c.edgeSeq)
}

// Layout converts a voyage into positioned nodes and edges. It is pure and
// total: nil or partial input degrades to an empty graph, a day without
// locations still yields its container node.
func Layout(voyage *model.Voyage, cfg Config) Graph {
	cfg = cfg.withDefaults()
	g := Graph{Nodes: []Node{}, Edges: []Edge{}}
	if voyage == nil || len(voyage.Villes) == 0 {
		return g
	}

	maxLocs := maxLocationsPerDay(voyage)
	uniformDayWidth := dayWidthFor(maxLocs, cfg)
	cityWidth := uniformDayWidth + cityWidthMargin
	if !cfg.UniformDayWidth {
		cityWidth = widestDayWidth(voyage, cfg) + cityWidthMargin
	}

	cur := cursor{y: originY}
	for i := range voyage.Villes {
		cur = layoutCity(&g, cur, voyage, i, cityWidth, uniformDayWidth, cfg)
	}
	return g
}

// maxLocationsPerDay returns the largest emplacement count of any single
// day, never less than 1 so that empty voyages keep a sane day width.
func maxLocationsPerDay(voyage *model.Voyage) int {
	max := 1
	for _, ville := range voyage.Villes {
		for _, jour := range ville.Jours {
			if n := len(jour.Emplacements); n > max {
				max = n
			}
		}
	}
	return max
}

func widestDayWidth(voyage *model.Voyage, cfg Config) float64 {
	widest := dayWidthFor(1, cfg)
	for _, ville := range voyage.Villes {
		for _, jour := range ville.Jours {
			if w := dayWidthFor(len(jour.Emplacements), cfg); w > widest {
				widest = w
			}
		}
	}
	return widest
}

func dayWidthFor(locations int, cfg Config) float64 {
	if locations < 1 {
		locations = 1
	}
	return contentWidthFor(locations, cfg) + cfg.DayPadding
}

func contentWidthFor(locations int, cfg Config) float64 {
	if locations <= 0 {
		return 0
	}
	n := float64(locations)
	return n*cfg.LocationWidth + (n-1)*cfg.LocationSpacing
}

// layoutCity emits one city container with its days, locations, lodging
// connectors and, when a matching transport leg exists, the connector to
// the next city. It returns the advanced cursor.
func layoutCity(g *Graph, cur cursor, voyage *model.Voyage, index int, cityWidth, uniformDayWidth float64, cfg Config) cursor {
	ville := voyage.Villes[index]
	cityHeight := float64(len(ville.Jours))*daySlotHeight + cityBaseHeight

	g.Nodes = append(g.Nodes, Node{
		ID:       ville.ID,
		Kind:     KindCityContainer,
		Position: Position{X: cityX, Y: cur.y},
		Size:     &Size{Width: cityWidth, Height: cityHeight},
		Label:    ville.Nom,
	})

	jourY := float64(dayStartY)
	for jourIndex, jour := range ville.Jours {
		dayWidth := uniformDayWidth
		if !cfg.UniformDayWidth {
			dayWidth = dayWidthFor(len(jour.Emplacements), cfg)
		}
		dayX := (cityWidth - dayWidth) / 2

		g.Nodes = append(g.Nodes, Node{
			ID:       jour.ID,
			Kind:     KindDayContainer,
			Position: Position{X: dayX, Y: jourY},
			ParentID: ville.ID,
			Size:     &Size{Width: dayWidth, Height: dayHeight},
			Label:    fmt.Sprintf("JOUR %d", jour.NumeroJour),
			Data:     dayPayload(jour),
		})

		if jour.Hebergement != nil {
			lodgingID := "hebergement-" + jour.ID
			g.Nodes = append(g.Nodes, Node{
				ID:       lodgingID,
				Kind:     KindLodgingConnector,
				Position: Position{X: dayX + dayWidth + lodgingGap, Y: jourY + dayHeight/2 - lodgingHalf},
				ParentID: ville.ID,
				ZIndex:   connectorZIndex,
				Label:    jour.Hebergement.Nom,
				Data:     jour.Hebergement,
			})
			g.Edges = append(g.Edges, Edge{
				ID:       cur.nextEdgeID(),
				Source:   jour.ID,
				Target:   lodgingID,
				Style:    EdgeLodging,
				Animated: false,
				Label:    "Hébergement",
			})
		}

		// Locations stay compact: centered as a group using the actual
		// count, only the container width is uniform.
		contentWidth := contentWidthFor(len(jour.Emplacements), cfg)
		startX := (dayWidth - contentWidth) / 2
		for empIndex, emp := range jour.Emplacements {
			g.Nodes = append(g.Nodes, Node{
				ID:       emp.ID,
				Kind:     KindLocation,
				Position: Position{X: startX + float64(empIndex)*(cfg.LocationWidth+cfg.LocationSpacing), Y: locationY},
				ParentID: jour.ID,
				Data:     emp,
			})
			if empIndex > 0 {
				g.Edges = append(g.Edges, Edge{
					ID:       cur.nextEdgeID(),
					Source:   jour.Emplacements[empIndex-1].ID,
					Target:   emp.ID,
					Style:    EdgePrimaryRoute,
					Animated: cfg.AnimateEdges,
				})
			}
		}

		// Hand over to the next day of the same city, but only when both
		// days actually have locations.
		if jourIndex < len(ville.Jours)-1 {
			next := ville.Jours[jourIndex+1]
			if len(jour.Emplacements) > 0 && len(next.Emplacements) > 0 {
				g.Edges = append(g.Edges, Edge{
					ID:       cur.nextEdgeID(),
					Source:   jour.Emplacements[len(jour.Emplacements)-1].ID,
					Target:   next.Emplacements[0].ID,
					Style:    EdgeDayConnector,
					Animated: false,
				})
			}
		}

		jourY += daySlotHeight
	}

	if index == len(voyage.Villes)-1 {
		cur.y += cityHeight + cfg.CitySpacing
		return cur
	}

	next := voyage.Villes[index+1]
	transport := findTransport(voyage.Transports, ville.ID, next.ID)
	if !cfg.ShowTransportNodes || transport == nil {
		// Flat city-to-city gap, no connector band.
		cur.y += cityHeight + cfg.CitySpacing
		return cur
	}

	transportID := fmt.Sprintf("transport-%s-%s", ville.ID, next.ID)
	transportY := cur.y + cityHeight + transportOffset
	g.Nodes = append(g.Nodes, Node{
		ID:       transportID,
		Kind:     KindTransportConnector,
		Position: Position{X: cityX + cityWidth/2 - transportHalf, Y: transportY},
		ZIndex:   connectorZIndex,
		Label:    "TRANSPORT",
		Data:     transport,
	})

	if last := lastLocation(ville); last != nil {
		g.Edges = append(g.Edges, Edge{
			ID:       cur.nextEdgeID(),
			Source:   last.ID,
			Target:   transportID,
			Style:    EdgeTransport,
			Animated: cfg.AnimateEdges,
			Label:    "Transport",
		})
	}
	if first := firstLocation(next); first != nil {
		g.Edges = append(g.Edges, Edge{
			ID:       cur.nextEdgeID(),
			Source:   transportID,
			Target:   first.ID,
			Style:    EdgeTransport,
			Animated: cfg.AnimateEdges,
			Label:    "Transport",
		})
	}

	cur.y = transportY + cfg.CitySpacing
	return cur
}

type dayData struct {
	Titre string `json:"titre_jour,omitempty"`
	Theme string `json:"theme,omitempty"`
}

func dayPayload(jour *model.Jour) any {
	if jour.Titre == "" && jour.Theme == "" {
		return nil
	}
	return dayData{Titre: jour.Titre, Theme: jour.Theme}
}

// findTransport matches a leg by departure and arrival city id. Order in
// the transports list does not matter.
func findTransport(transports []*model.Transport, from, to string) *model.Transport {
	for _, t := range transports {
		if t != nil && t.VilleDepart == from && t.VilleArrivee == to {
			return t
		}
	}
	return nil
}

// lastLocation returns the final emplacement of the city's last day, nil
// when that day is empty or the city has no days.
func lastLocation(ville *model.Ville) *model.Emplacement {
	if len(ville.Jours) == 0 {
		return nil
	}
	jour := ville.Jours[len(ville.Jours)-1]
	if len(jour.Emplacements) == 0 {
		return nil
	}
	return jour.Emplacements[len(jour.Emplacements)-1]
}

func firstLocation(ville *model.Ville) *model.Emplacement {
	if len(ville.Jours) == 0 {
		return nil
	}
	jour := ville.Jours[0]
	if len(jour.Emplacements) == 0 {
		return nil
	}
	return jour.Emplacements[0]
}
