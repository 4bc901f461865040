// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Mention records that two researchers were named together in external
// text, such as one researcher's publications page listing the other as a
// co-author.
type Mention struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`

	// FoundOn lists whose pages contained the mention.
	FoundOn []string `json:"found_on,omitempty" yaml:"found_on,omitempty"`
}
