// Package identity defines the common types for name enrichment results.
package identity

import "errors"

// ErrSearchFailed marks a failure of the initial search stage, the
// only stage whose failure aborts the whole request. A missing handle
// or misbehaving bio source degrades the record instead of erroring.
var ErrSearchFailed = errors.New("search stage failed")

// Links holds at most one profile URL per category, plus a derived flag
// recording that some result link referenced Wikipedia. For each
// category the first match in document order wins.
type Links struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Personal  string `json:"personal,omitempty"`

	// WikipediaSeen drives bio source selection and is not part of the
	// wire format.
	WikipediaSeen bool `json:"-"`
}

// Empty reports whether no profile link was found in any category.
func (l Links) Empty() bool {
	return l.LinkedIn == "" && l.Twitter == "" && l.Facebook == "" &&
		l.Instagram == "" && l.Personal == ""
}

// Thumbnail is an image reference attached to a bio.
type Thumbnail struct {
	Source string `json:"source"`
}

// Bio is a short biography with an optional thumbnail. The shape is the
// same whether it came from the encyclopedic summary or a profile page
// scrape; provenance only matters for the merge policy.
type Bio struct {
	Description string     `json:"description"`
	Thumbnail   *Thumbnail `json:"thumbnail,omitempty"`
}

// Record is the identity card produced for one enrichment request.
// Nil pointers mean the field could not be resolved. A Record is built
// once per request and never mutated afterwards.
type Record struct {
	Title    string
	Links    Links
	Bio      *Bio
	Location *string
}
