package notif

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"skillnaav/internal/common"
)

// NotificationHandler exposes the notification inbox and the dispatch
// endpoints used by partner and admin workflows over HTTP.
type NotificationHandler struct {
	service    *NotificationService
	dispatcher *Dispatcher
}

func NewNotificationHandler(service *NotificationService, dispatcher *Dispatcher) *NotificationHandler {
	return &NotificationHandler{
		service:    service,
		dispatcher: dispatcher,
	}
}

type sendNotificationRequest struct {
	StudentID string `json:"studentId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Link      string `json:"link"`
	Email     string `json:"email"`
}

type applicationStatusRequest struct {
	StudentID string `json:"studentId"`
	JobTitle  string `json:"jobTitle"`
	Status    string `json:"status"`
	Email     string `json:"email"`
}

func (h *NotificationHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req sendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.InvalidArgument("invalid request body"))
		return
	}

	n, err := h.dispatcher.Dispatch(r.Context(), Request{
		Type:      common.SystemType,
		StudentID: req.StudentID,
		Title:     req.Title,
		Message:   req.Message,
		Link:      req.Link,
		Metadata:  common.NotificationMetadata{MetaEmail: req.Email},
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success":      true,
		"notification": n,
	})
}

func (h *NotificationHandler) SendApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req applicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.InvalidArgument("invalid request body"))
		return
	}

	n, err := h.dispatcher.SendApplicationStatus(r.Context(), req.StudentID, req.JobTitle, req.Status, req.Email)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success":      true,
		"notification": n,
	})
}

func (h *NotificationHandler) GetStudentNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListByStudent(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"notifications": list,
	})
}

func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UnreadCount(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   count,
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.MarkRead(r.Context(), mux.Vars(r)["notificationId"])
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"notification": n,
	})
}

func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["notificationId"]); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Notification deleted",
	})
}

// RegisterRoutes mounts the handlers under r, which is expected to be the
// /notifications subrouter. limit wraps the mutating endpoints.
func (h *NotificationHandler) RegisterRoutes(r *mux.Router, limit mux.MiddlewareFunc) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.Handle("/send", limit(http.HandlerFunc(h.SendNotification))).Methods("POST")
	r.Handle("/application-status", limit(http.HandlerFunc(h.SendApplicationStatus))).Methods("POST")
	r.Handle("/read/{notificationId}", limit(http.HandlerFunc(h.MarkAsRead))).Methods("PUT")
	r.Handle("/{notificationId}", limit(http.HandlerFunc(h.DeleteNotification))).Methods("DELETE")

	r.HandleFunc("/{studentId}/unread-count", h.GetUnreadCount).Methods("GET")
	r.HandleFunc("/{studentId}", h.GetStudentNotifications).Methods("GET")
}
