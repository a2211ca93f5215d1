package identity

// Message types exchanged with the UI collaborator.
const (
	RequestType  = "identity-query"
	ResponseType = "identity-query-response"
)

// Request asks the pipeline to resolve an identity for a name.
type Request struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response carries either a populated identity card or an error
// indicator back to the requester. Description is the link set; Bio and
// Location are omitted when absent.
type Response struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description *Links  `json:"description,omitempty"`
	Bio         *Bio    `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
	Error       string  `json:"error,omitempty"`
}
