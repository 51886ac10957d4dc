package handler

import "errors"

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPath is the prefix of the JSON API.
	APIPath = RootPath + "api/"
)

// ErrNilACS is returned if the app, cfg or store passed to Init is nil.
var ErrNilACS = errors.New("app, cfg or store is nil")

// Response is the JSON body of failed API calls.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BaseLayout is the layout every HTML page is rendered into.
const BaseLayout = "layouts/base"
