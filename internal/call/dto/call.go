package dto

// CallEditRequest updates the operator-settable response flag on a call.
// A nil DidRespond means "no update requested" and is not an error.
type CallEditRequest struct {
	DidRespond *bool `json:"did_respond"`
}

type HelloRequest struct {
	Name string `json:"name"`
}

type HelloResponse struct {
	Message string `json:"message"`
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
