package rpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"skillnaav/internal/common"
	"skillnaav/internal/memstore"
	"skillnaav/internal/notif"
	"skillnaav/internal/offer"
	"skillnaav/internal/posting"
	"skillnaav/internal/savedjob"
)

const (
	bufSize   = 1024 * 1024
	studentID = "64b7f1c2a9e4d3b2c1a09f8e"
	partnerID = "64b7f1c2a9e4d3b2c1a09f8f"
	jobID     = "65a1b2c3d4e5f60718293a4b"
)

type rpcFixture struct {
	client     *Client
	conn       *grpc.ClientConn
	dispatcher *notif.Dispatcher
	manager    *offer.Manager
	tm         *common.TokenManager
}

func setupGRPCTest(t *testing.T, authRequired bool) *rpcFixture {
	t.Helper()
	lis := bufconn.Listen(bufSize)

	stores := memstore.New().Stores()
	postings := posting.NewReader(stores.Postings, time.Minute, time.Minute)
	require.NoError(t, postings.Create(context.Background(), &common.Posting{
		ID:          jobID,
		PartnerID:   partnerID,
		JobTitle:    "Backend Intern",
		CompanyName: "Acme",
	}))
	dispatcher := notif.NewDispatcher(stores.Notifications, nil)
	manager := offer.NewManager(stores.Offers, postings, dispatcher)
	tm := common.NewTokenManager("test-secret", "skillnaav", time.Hour)

	s := NewServer(tm, authRequired, NewHandler(
		notif.NewNotificationService(stores.Notifications),
		savedjob.NewRegistry(stores.SavedJobs, postings),
		manager,
	))
	go func() {
		if err := s.Serve(lis); err != nil {
			t.Errorf("Server exited with error: %v", err)
		}
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		s.Stop()
	})

	return &rpcFixture{
		client:     NewClient(conn),
		conn:       conn,
		dispatcher: dispatcher,
		manager:    manager,
		tm:         tm,
	}
}

func TestLifecycleService_Notifications(t *testing.T) {
	f := setupGRPCTest(t, false)
	ctx := context.Background()

	n, err := f.dispatcher.Notify(ctx, studentID, "Welcome", "Your profile is live", nil)
	require.NoError(t, err)

	resp, err := f.client.Call(ctx, MethodListNotifications, map[string]interface{}{"studentId": studentID})
	require.NoError(t, err)
	list := resp.GetFields()["notifications"].GetListValue().GetValues()
	require.Len(t, list, 1)
	assert.Equal(t, "Welcome", list[0].GetStructValue().GetFields()["title"].GetStringValue())
	assert.False(t, list[0].GetStructValue().GetFields()["isRead"].GetBoolValue())

	resp, err = f.client.Call(ctx, MethodMarkNotificationRead, map[string]interface{}{"notificationId": n.ID})
	require.NoError(t, err)
	assert.True(t, resp.GetFields()["notification"].GetStructValue().GetFields()["isRead"].GetBoolValue())

	_, err = f.client.Call(ctx, MethodDeleteNotification, map[string]interface{}{"notificationId": n.ID})
	require.NoError(t, err)

	_, err = f.client.Call(ctx, MethodDeleteNotification, map[string]interface{}{"notificationId": n.ID})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = f.client.Call(ctx, MethodDeleteNotification, map[string]interface{}{"notificationId": "bad"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestLifecycleService_SavedJobs(t *testing.T) {
	f := setupGRPCTest(t, false)
	ctx := context.Background()
	pair := map[string]interface{}{"userId": studentID, "jobId": jobID}

	_, err := f.client.Call(ctx, MethodSaveJob, pair)
	require.NoError(t, err)

	_, err = f.client.Call(ctx, MethodSaveJob, pair)
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	resp, err := f.client.Call(ctx, MethodListSavedJobs, map[string]interface{}{"userId": studentID})
	require.NoError(t, err)
	saved := resp.GetFields()["savedJobs"].GetListValue().GetValues()
	require.Len(t, saved, 1)
	job := saved[0].GetStructValue().GetFields()["job"].GetStructValue()
	assert.Equal(t, "Acme", job.GetFields()["companyName"].GetStringValue())

	resp, err = f.client.Call(ctx, MethodRemoveSavedJob, pair)
	require.NoError(t, err)
	assert.Equal(t, "Job removed successfully", resp.GetFields()["message"].GetStringValue())

	_, err = f.client.Call(ctx, MethodRemoveSavedJob, pair)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestLifecycleService_RespondToOffer(t *testing.T) {
	f := setupGRPCTest(t, false)
	ctx := context.Background()

	issued, err := f.manager.Issue(ctx, offer.IssueRequest{
		StudentID:    studentID,
		InternshipID: jobID,
		Name:         "Asha",
		Email:        "asha@example.com",
		Position:     "Backend Intern",
		StartDate:    "2024-07-01",
	})
	require.NoError(t, err)

	resp, err := f.client.Call(ctx, MethodRespondToOffer, map[string]interface{}{"offerId": issued.ID, "status": "accepted"})
	require.NoError(t, err)
	assert.Equal(t, "Accepted", resp.GetFields()["offer"].GetStructValue().GetFields()["status"].GetStringValue())

	_, err = f.client.Call(ctx, MethodRespondToOffer, map[string]interface{}{"offerId": issued.ID, "status": "Rejected"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = f.client.Call(ctx, MethodRespondToOffer, map[string]interface{}{"offerId": issued.ID, "status": "Maybe"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestLifecycleService_Auth(t *testing.T) {
	f := setupGRPCTest(t, true)

	_, err := f.client.Call(context.Background(), MethodListSavedJobs, map[string]interface{}{"userId": studentID})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	token, err := f.tm.GenerateToken(partnerID, "student")
	require.NoError(t, err)
	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)

	_, err = f.client.Call(ctx, MethodListSavedJobs, map[string]interface{}{"userId": studentID})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	resp, err := f.client.Call(ctx, MethodListSavedJobs, map[string]interface{}{"userId": partnerID})
	require.NoError(t, err)
	assert.Empty(t, resp.GetFields()["savedJobs"].GetListValue().GetValues())
}

func TestLifecycleService_Health(t *testing.T) {
	f := setupGRPCTest(t, true)

	resp, err := healthpb.NewHealthClient(f.conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
