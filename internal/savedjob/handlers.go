package savedjob

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"skillnaav/internal/common"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

type saveJobRequest struct {
	UserID string `json:"userId"`
	JobID  string `json:"jobId"`
}

func (h *Handler) SaveJob(w http.ResponseWriter, r *http.Request) {
	var req saveJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.InvalidArgument("invalid request body"))
		return
	}

	sj, err := h.registry.Save(r.Context(), req.UserID, req.JobID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Job saved successfully",
		"savedJob": sj,
	})
}

func (h *Handler) GetSavedJobs(w http.ResponseWriter, r *http.Request) {
	list, err := h.registry.ListByUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) RemoveSavedJob(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	removed, err := h.registry.Remove(r.Context(), vars["userId"], vars["jobId"])
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Job removed successfully",
		"deletedJob": removed,
	})
}

// RegisterRoutes mounts the handlers on the /savedJobs subrouter. limit
// wraps the mutating endpoints.
func (h *Handler) RegisterRoutes(r *mux.Router, limit mux.MiddlewareFunc) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.Handle("/save", limit(http.HandlerFunc(h.SaveJob))).Methods("POST")
	r.HandleFunc("/getSavedJobs/{userId}", h.GetSavedJobs).Methods("GET")
	r.Handle("/remove/{userId}/{jobId}", limit(http.HandlerFunc(h.RemoveSavedJob))).Methods("DELETE")
}
