package rpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"skillnaav/internal/common"
	"skillnaav/internal/notif"
	"skillnaav/internal/offer"
	"skillnaav/internal/savedjob"
)

// Handler wires Struct requests to the domain services.
type Handler struct {
	notifications *notif.NotificationService
	savedJobs     *savedjob.Registry
	offers        *offer.Manager
}

func NewHandler(notifications *notif.NotificationService, savedJobs *savedjob.Registry, offers *offer.Manager) *Handler {
	return &Handler{
		notifications: notifications,
		savedJobs:     savedJobs,
		offers:        offers,
	}
}

func (h *Handler) ListNotifications(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	list, err := h.notifications.ListByStudent(ctx, field(req, "studentId"))
	if err != nil {
		return nil, common.ToStatus(err)
	}
	return respond(map[string]interface{}{"success": true, "notifications": list})
}

func (h *Handler) MarkNotificationRead(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	n, err := h.notifications.MarkRead(ctx, field(req, "notificationId"))
	if err != nil {
		return nil, common.ToStatus(err)
	}
	return respond(map[string]interface{}{"success": true, "notification": n})
}

func (h *Handler) DeleteNotification(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := h.notifications.Delete(ctx, field(req, "notificationId")); err != nil {
		return nil, common.ToStatus(err)
	}
	return respond(map[string]interface{}{"success": true, "message": "Notification deleted"})
}

func (h *Handler) SaveJob(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	saved, err := h.savedJobs.Save(ctx, field(req, "userId"), field(req, "jobId"))
	if err != nil {
		return nil, common.ToStatus(err)
	}
	return respond(map[string]interface{}{"message": "Job saved successfully", "savedJob": saved})
}

func (h *Handler) ListSavedJobs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	list, err := h.savedJobs.ListByUser(ctx, field(req, "userId"))
	if err != nil {
		return nil, common.ToStatus(err)
	}
	return respond(map[string]interface{}{"savedJobs": list})
}

func (h *Handler) RemoveSavedJob(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	removed, err := h.savedJobs.Remove(ctx, field(req, "userId"), field(req, "jobId"))
	if err != nil {
		return nil, common.ToStatus(err)
	}
	return respond(map[string]interface{}{"message": "Job removed successfully", "deletedJob": removed})
}

func (h *Handler) RespondToOffer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	updated, err := h.offers.RecordResponse(ctx, field(req, "offerId"), field(req, "status"))
	if err != nil {
		return nil, common.ToStatus(err)
	}
	return respond(map[string]interface{}{"message": "Offer " + updated.Status.String(), "offer": updated})
}

func field(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

// respond renders payload through its JSON form so gRPC and REST clients
// see the same field names.
func respond(payload interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, common.ToStatus(common.WrapError(common.KindInternal, "failed to encode response", err))
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, common.ToStatus(common.WrapError(common.KindInternal, "failed to encode response", err))
	}
	return out, nil
}

// NewServer builds the gRPC server with logging and auth interceptors, the
// lifecycle service, health checks and reflection.
func NewServer(tm *common.TokenManager, authRequired bool, h *Handler) *grpc.Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			common.LoggingUnaryInterceptor,
			common.AuthInterceptor(tm, authRequired),
		),
	)

	RegisterLifecycleServer(server, h)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	reflection.Register(server)
	return server
}
