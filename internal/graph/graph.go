// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

// Package graph turns a model.Voyage into a positioned node/edge graph for
// the client-side diagram layer. Layout is pure, Enrich attaches selection
// callbacks afterwards.
package graph

import "encoding/json"

// NodeKind is the closed set of node variants. Container kinds group
// children, connector kinds annotate the route between containers.
type NodeKind int

const (
	KindCityContainer NodeKind = iota
	KindDayContainer
	KindLocation
	KindTransportConnector
	KindLodgingConnector
)

// String reports the renderer type name used by the diagram layer.
func (k NodeKind) String() string {
	switch k {
	case KindCityContainer:
		return "villeParent"
	case KindDayContainer:
		return "jourParent"
	case KindLocation:
		return "emplacement"
	case KindTransportConnector:
		return "transport"
	case KindLodgingConnector:
		return "hebergement"
	}
	return "unknown"
}

// Selectable reports whether a node of this kind reacts to clicks.
// Container nodes do not.
func (k NodeKind) Selectable() bool {
	switch k {
	case KindLocation, KindTransportConnector, KindLodgingConnector:
		return true
	case KindCityContainer, KindDayContainer:
		return false
	}
	return false
}

func (k NodeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// EdgeStyle tags how a connector edge is drawn.
type EdgeStyle int

const (
	EdgePrimaryRoute EdgeStyle = iota
	EdgeDayConnector
	EdgeTransport
	EdgeLodging
)

func (s EdgeStyle) String() string {
	switch s {
	case EdgePrimaryRoute:
		return "primaryRoute"
	case EdgeDayConnector:
		return "dayConnector"
	case EdgeTransport:
		return "transport"
	case EdgeLodging:
		return "lodging"
	}
	return "unknown"
}

func (s EdgeStyle) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Position is a point in the abstract drawing plane. Child coordinates are
// relative to the parent node.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is one element of the laid out graph. Data carries the source
// entity, OnSelect is set by Enrich and is nil straight out of Layout.
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"type"`
	Position Position `json:"position"`
	ParentID string   `json:"parentId,omitempty"`
	Size     *Size    `json:"size,omitempty"`
	ZIndex   int      `json:"zIndex,omitempty"`
	Label    string   `json:"label,omitempty"`
	Data     any      `json:"data,omitempty"`
	OnSelect func()   `json:"-"`
}

// Edge connects two nodes. IDs come from a monotonic counter and are only
// stable within a single Layout call.
type Edge struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Target   string    `json:"target"`
	Style    EdgeStyle `json:"style"`
	Animated bool      `json:"animated"`
	Label    string    `json:"label,omitempty"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
