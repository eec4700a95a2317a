package model

// ModelDescriptor describes a transcription model offered to the user.
// Only Identifier affects transcription; it is sent as the model parameter.
type ModelDescriptor struct {
	Identifier  string `json:"identifier" yaml:"identifier"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Description string `json:"description" yaml:"description"`
	Provider    string `json:"provider" yaml:"provider"`
	Speed       string `json:"speed,omitempty" yaml:"speed"`
	Accuracy    string `json:"accuracy,omitempty" yaml:"accuracy"`
}
