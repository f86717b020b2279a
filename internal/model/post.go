package model

import "time"

// Facet feature types as named by the app.bsky.richtext.facet lexicon.
const (
	FeatureLink    = "app.bsky.richtext.facet#link"
	FeatureMention = "app.bsky.richtext.facet#mention"
	FeatureTag     = "app.bsky.richtext.facet#tag"
)

// ByteSlice is a half-open range over the UTF-8 bytes of a post's text.
type ByteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// Feature is a typed facet annotation. Only the field matching Type is set.
type Feature struct {
	Type string `json:"$type"`
	URI  string `json:"uri,omitempty"`
	DID  string `json:"did,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

type Facet struct {
	Index    ByteSlice `json:"index"`
	Features []Feature `json:"features"`
}

// Embed is external link metadata attached to a post instead of inline text.
type Embed struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Post is the record handed to a sink. It is built once per run and not
// modified afterwards.
type Post struct {
	Text      string
	Facets    []Facet
	Embed     *Embed
	Langs     []string
	CreatedAt time.Time
}
