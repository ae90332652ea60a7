// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package model

// Voyage is the root trip aggregate produced by the orchestrateur backend.
// Wire names follow the backend contract, the sequence order of Villes is
// the visiting order.
type Voyage struct {
	ID          string          `json:"id_voyage"`
	Titre       string          `json:"titre_voyage"`
	DureeTotale int             `json:"duree_totale,omitempty"`
	Villes      []*Ville        `json:"villes"`
	Transports  []*Transport    `json:"transports,omitempty"`
	Metadata    *VoyageMetadata `json:"metadata,omitempty"`
}

// Ville is a city stop. Jours are ordered chronologically.
type Ville struct {
	ID          string  `json:"id_ville"`
	Nom         string  `json:"nom_ville"`
	DureeSejour int     `json:"duree_sejour,omitempty"`
	Jours       []*Jour `json:"jours"`
}

// Jour is a single day within a city stay. NumeroJour is 1-based and
// matches the position in Ville.Jours.
type Jour struct {
	ID           string         `json:"id_jour"`
	NumeroJour   int            `json:"numero_jour"`
	Titre        string         `json:"titre_jour"`
	Theme        string         `json:"theme"`
	Hebergement  *Hebergement   `json:"hebergement,omitempty"`
	Emplacements []*Emplacement `json:"emplacements"`
}

// MealCategory tags restaurant emplacements.
type MealCategory string

const (
	MealPetitDejeuner MealCategory = "petit_dejeuner"
	MealDejeuner      MealCategory = "dejeuner"
	MealDiner         MealCategory = "diner"
)

// Emplacement is a visit location or meal stop within a day. The meal
// fields are only set when the entry represents a restaurant, there is no
// separate restaurant type on the wire.
type Emplacement struct {
	ID          string     `json:"id_emplacement"`
	Nom         string     `json:"nom"`
	Type        string     `json:"type"`
	ImageURL    string     `json:"imageUrl"`
	Heure       string     `json:"heure"`
	Duree       string     `json:"duree,omitempty"`
	Description string     `json:"description"`
	Activites   []string   `json:"activites"`
	Resources   []Resource `json:"resources,omitempty"`

	CategorieRepas   MealCategory `json:"categorie_repas,omitempty"`
	LieuHebergement  bool         `json:"lieu_hebergement,omitempty"`
	Menu             []string     `json:"menu,omitempty"`
	Specialites      []string     `json:"specialites,omitempty"`
	Prix             string       `json:"prix,omitempty"`
	Ambiance         string       `json:"ambiance,omitempty"`
	Reservation      string       `json:"reservation,omitempty"`
}

// Hebergement is the lodging assigned to a single day.
type Hebergement struct {
	ID          string   `json:"id_hebergement"`
	Nom         string   `json:"nom"`
	Type        string   `json:"type"`
	Categorie   string   `json:"categorie"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Adresse     string   `json:"adresse,omitempty"`
	Description string   `json:"description"`
	Equipements []string `json:"equipements"`
	PrixNuit    string   `json:"prix_nuit"`
	CheckIn     string   `json:"check_in"`
	CheckOut    string   `json:"check_out"`
	Contact     *Contact `json:"contact,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

type Contact struct {
	Telephone string `json:"telephone,omitempty"`
	Email     string `json:"email,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Comfort is the three tier comfort rating of a transport option.
type Comfort string

const (
	ComfortHigh   Comfort = "high"
	ComfortMedium Comfort = "medium"
	ComfortLow    Comfort = "low"
)

type TransportOption struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Duration    string  `json:"duration"`
	Price       string  `json:"price"`
	Comfort     Comfort `json:"comfort"`
	Frequency   string  `json:"frequency"`
	Description string  `json:"description"`
	Icon        string  `json:"icon,omitempty"`
	Recommended bool    `json:"recommended"`
}

// Transport is an inter-city leg. VilleDepart and VilleArrivee reference
// Ville IDs, not positions.
type Transport struct {
	ID               string            `json:"id_transport"`
	VilleDepart      string            `json:"ville_depart"`
	VilleArrivee     string            `json:"ville_arrivee"`
	Titre            string            `json:"titre,omitempty"`
	ImageURL         string            `json:"imageUrl,omitempty"`
	DureeMoyenne     string            `json:"duree_moyenne"`
	Description      string            `json:"description"`
	TransportOptions []TransportOption `json:"transportOptions"`
	Activites        []string          `json:"activites,omitempty"`
	Resources        []Resource        `json:"resources,omitempty"`
}

// Resource is a linked document (PDF, video, external site).
type Resource struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// VoyageMetadata carries generation details reported by the orchestrateur.
type VoyageMetadata struct {
	TempsReponseMs       int                `json:"temps_reponse_ms"`
	TempsReponseSecondes float64            `json:"temps_reponse_secondes"`
	TimestampGeneration  string             `json:"timestamp_generation"`
	ProfilUtilisateur    *ProfilUtilisateur `json:"profil_utilisateur,omitempty"`
}

// ProfilUtilisateur is the derived trip summary sent alongside the profile
// when requesting itinerary generation.
type ProfilUtilisateur struct {
	DureeJours               int      `json:"duree_jours"`
	Villes                   []string `json:"villes"`
	BudgetRange              string   `json:"budget_range"`
	Rythme                   string   `json:"rythme"`
	NombrePersonnes          int      `json:"nombre_personnes,omitempty"`
	CentresInteret           []string `json:"centres_interet,omitempty"`
	RestrictionsAlimentaires []string `json:"restrictions_alimentaires,omitempty"`
	PreferencesHebergement   []string `json:"preferences_hebergement,omitempty"`
}
