package offer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"skillnaav/internal/common"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SendOfferLetter(w http.ResponseWriter, r *http.Request) {
	var req IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.InvalidArgument("invalid request body"))
		return
	}

	offer, err := h.manager.Issue(r.Context(), req)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Offer letter sent successfully",
		"offerLetter": offer,
	})
}

func (h *Handler) GetOfferLetter(w http.ResponseWriter, r *http.Request) {
	offer, err := h.manager.Get(r.Context(), mux.Vars(r)["offerId"])
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, offer)
}

func (h *Handler) GetStudentOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.manager.ListByStudent(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"offers":  offers,
	})
}

func (h *Handler) UpdateOfferStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.InvalidArgument("invalid request body"))
		return
	}

	offer, err := h.manager.RecordResponse(r.Context(), mux.Vars(r)["offerId"], req.Status)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Offer %s successfully", strings.ToLower(offer.Status.String())),
		"offer":   offer,
	})
}

// RegisterRoutes mounts the handlers on the /offer-letters subrouter. limit
// wraps the mutating endpoints.
func (h *Handler) RegisterRoutes(r *mux.Router, limit mux.MiddlewareFunc) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.Handle("", limit(http.HandlerFunc(h.SendOfferLetter))).Methods("POST")
	r.HandleFunc("/student/{studentId}", h.GetStudentOffers).Methods("GET")
	r.HandleFunc("/{offerId}", h.GetOfferLetter).Methods("GET")
	r.Handle("/{offerId}/status", limit(http.HandlerFunc(h.UpdateOfferStatus))).Methods("PUT")
}
