package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"healthcare-booking/pkg/response"
	"healthcare-booking/pkg/validator"

	"github.com/gorilla/mux"
)

// pathID reads a positive numeric path variable. It writes a 400 and returns false when invalid.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return 0, false
	}
	return uint(id), true
}

// decodeAndValidate decodes the JSON body into req and validates it, writing the error response on failure
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	// an empty body decodes as {} and is left to validation
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}
