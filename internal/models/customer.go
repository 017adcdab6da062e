package models

// CustomerProfile is a generated sketch of a typical customer behind a persona.
type CustomerProfile struct {
	Age               string   `json:"age"`
	Gender            string   `json:"gender"`
	Location          string   `json:"location"`
	Occupation        string   `json:"occupation"`
	Income            string   `json:"income"`
	Motivations       []string `json:"motivations"`
	Interests         []string `json:"interests"`
	PainPoints        []string `json:"pain_points"`
	PreferredChannels []string `json:"preferred_channels"`
}

// ProfileResponse wraps a generated profile with the lookup that produced it.
type ProfileResponse struct {
	Persona              Persona         `json:"persona"`
	LikelihoodPercentage string          `json:"likelihood_percentage"`
	Profile              CustomerProfile `json:"profile"`
}
