// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package inspect

import (
	"github.com/nextrip/core/internal/graph"
	"github.com/nextrip/core/internal/model"
)

// LocationDetail is the visit/transport panel view model.
type LocationDetail struct {
	Title            string                `json:"title"`
	Category         string                `json:"category,omitempty"`
	ImageURL         string                `json:"imageUrl,omitempty"`
	Time             string                `json:"time,omitempty"`
	Description      string                `json:"description,omitempty"`
	Activities       []string              `json:"activities,omitempty"`
	Resources        []model.Resource      `json:"resources,omitempty"`
	TransportOptions []TransportOptionView `json:"transportOptions,omitempty"`
	Meal             *MealView             `json:"meal,omitempty"`
}

type TransportOptionView struct {
	Mode        string `json:"mode"`
	Name        string `json:"name"`
	Duration    string `json:"duration"`
	Price       string `json:"price"`
	Frequency   string `json:"frequency"`
	Description string `json:"description,omitempty"`
	Recommended bool   `json:"recommended"`
	FilledStars int    `json:"filledStars"`
	EmptyStars  int    `json:"emptyStars"`
}

type MealView struct {
	Category    model.MealCategory `json:"category"`
	AtLodging   bool               `json:"atLodging,omitempty"`
	Menu        []string           `json:"menu,omitempty"`
	Specialites []string           `json:"specialites,omitempty"`
	Price       string             `json:"price,omitempty"`
	Ambiance    string             `json:"ambiance,omitempty"`
	Reservation string             `json:"reservation,omitempty"`
}

// LodgingDetail is the lodging panel view model.
type LodgingDetail struct {
	Name          string       `json:"name"`
	Type          string       `json:"type,omitempty"`
	Stars         int          `json:"stars"`
	ImageURL      string       `json:"imageUrl,omitempty"`
	Address       string       `json:"address,omitempty"`
	Description   string       `json:"description,omitempty"`
	PricePerNight string       `json:"pricePerNight,omitempty"`
	CheckIn       string       `json:"checkIn,omitempty"`
	CheckOut      string       `json:"checkOut,omitempty"`
	Amenities     []string     `json:"amenities,omitempty"`
	Contact       *ContactView `json:"contact,omitempty"`
	Notes         string       `json:"notes,omitempty"`
}

// ContactView only carries the fields that are actually present.
type ContactView struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

func NewLocationDetail(e *model.Emplacement) LocationDetail {
	d := LocationDetail{
		Title:       e.Nom,
		Category:    e.Type,
		ImageURL:    e.ImageURL,
		Time:        e.Heure,
		Description: e.Description,
		Activities:  e.Activites,
		Resources:   e.Resources,
	}
	if e.CategorieRepas != "" {
		d.Meal = &MealView{
			Category:    e.CategorieRepas,
			AtLodging:   e.LieuHebergement,
			Menu:        e.Menu,
			Specialites: e.Specialites,
			Price:       e.Prix,
			Ambiance:    e.Ambiance,
			Reservation: e.Reservation,
		}
	}
	return d
}

// NewTransportDetail renders an inter-city leg in the visit panel shape.
func NewTransportDetail(t *model.Transport) LocationDetail {
	d := LocationDetail{
		Title:       t.Titre,
		Category:    "Transport Inter-Villes",
		ImageURL:    t.ImageURL,
		Time:        t.DureeMoyenne,
		Description: t.Description,
		Activities:  t.Activites,
		Resources:   t.Resources,
	}
	for _, opt := range t.TransportOptions {
		filled, empty := ComfortStars(opt.Comfort)
		d.TransportOptions = append(d.TransportOptions, TransportOptionView{
			Mode:        opt.Type,
			Name:        opt.Name,
			Duration:    opt.Duration,
			Price:       opt.Price,
			Frequency:   opt.Frequency,
			Description: opt.Description,
			Recommended: opt.Recommended,
			FilledStars: filled,
			EmptyStars:  empty,
		})
	}
	return d
}

func NewLodgingDetail(h *model.Hebergement) LodgingDetail {
	d := LodgingDetail{
		Name:          h.Nom,
		Type:          h.Type,
		Stars:         LodgingStarCount(h.Categorie),
		ImageURL:      h.ImageURL,
		Address:       h.Adresse,
		Description:   h.Description,
		PricePerNight: h.PrixNuit,
		CheckIn:       h.CheckIn,
		CheckOut:      h.CheckOut,
		Amenities:     h.Equipements,
		Notes:         h.Notes,
	}
	if c := h.Contact; c != nil && (c.Telephone != "" || c.Email != "" || c.Website != "") {
		d.Contact = &ContactView{Phone: c.Telephone, Email: c.Email, Website: c.Website}
	}
	return d
}

// DetailFor builds the panel view model for a selected node. The second
// return is false for container nodes and unknown payloads.
func DetailFor(n graph.Node) (any, bool) {
	switch n.Kind {
	case graph.KindLocation:
		if e, ok := n.Data.(*model.Emplacement); ok {
			return NewLocationDetail(e), true
		}
	case graph.KindTransportConnector:
		if t, ok := n.Data.(*model.Transport); ok {
			return NewTransportDetail(t), true
		}
	case graph.KindLodgingConnector:
		if h, ok := n.Data.(*model.Hebergement); ok {
			return NewLodgingDetail(h), true
		}
	}
	return nil, false
}
