package handlers

import (
	"net/http"

	"github.com/mergington/activities/buildinfo"
)

// HandleVersion returns the server's build properties.
func HandleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}
