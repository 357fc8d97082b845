package domain

// Manifest describes who this agent is and what it can do
type Manifest struct {
	Identification Identification `json:"identification" yaml:"identification"`
	Capabilities   []Capability   `json:"capabilities"   yaml:"capabilities"   validate:"min=1,dive"`
}

// Identification is the identity block of a manifest
type Identification struct {
	SpeakerURI         string `json:"speakerUri"                   yaml:"speakerUri" validate:"notblank"`
	ServiceURL         string `json:"serviceUrl"                   yaml:"serviceUrl"`
	Organization       string `json:"organization,omitempty"       yaml:"organization"`
	ConversationalName string `json:"conversationalName,omitempty" yaml:"conversationalName"`
	Department         string `json:"department,omitempty"         yaml:"department"`
	Role               string `json:"role,omitempty"               yaml:"role"`
	Synopsis           string `json:"synopsis,omitempty"           yaml:"synopsis"`
}

// Capability is one advertised skill
type Capability struct {
	Keyphrases   []string `json:"keyphrases"          yaml:"keyphrases"   validate:"min=1,dive,notblank"`
	Descriptions []string `json:"descriptions"        yaml:"descriptions" validate:"min=1,dive,notblank"`
	Languages    []string `json:"languages,omitempty" yaml:"languages"`
}
