package profile

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pavandive/tinderlite-api/internal/auth"
	"github.com/pavandive/tinderlite-api/internal/httputil"
	"github.com/pavandive/tinderlite-api/internal/logging"
	"github.com/pavandive/tinderlite-api/internal/user"
)

// Handler contains HTTP handlers for the profile endpoints. Both sit
// behind the auth gate, which resolves the user into the request context.
type Handler struct {
	store user.Store
}

func NewHandler(store user.Store) *Handler {
	return &Handler{store: store}
}

// View returns the authenticated user's record
// @Summary      View own profile
// @Tags         profile
// @Produce      json
// @Success      200 {object} user.User
// @Failure      400 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /profile/view [get]
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "not authenticated", httputil.CodeMissingAuth, http.StatusBadRequest)
		return
	}

	httputil.RespondJSON(w, current, http.StatusOK)
}

// Edit updates the editable profile fields of the authenticated user
// @Summary      Edit own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body map[string]any true "Fields to update (allow-listed)"
// @Success      200 {object} map[string]string
// @Failure      400 {object} httputil.ErrorResponse "Invalid edit request"
// @Router       /profile/edit [patch]
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "not authenticated", httputil.CodeMissingAuth, http.StatusBadRequest)
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		logger.Warn("invalid profile edit request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := ApplyEdit(current, fields); err != nil {
		logger.Warn("profile edit rejected", "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidEditField, http.StatusBadRequest)
		return
	}

	updated, err := h.store.UpdateProfile(r.Context(), current)
	if err != nil {
		logger.Error("profile update failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update profile", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("profile updated", "user_id", updated.ID)

	httputil.RespondJSON(w, map[string]string{
		"message": fmt.Sprintf("%s, your profile updated successfully", updated.FirstName),
	}, http.StatusOK)
}
