package notif

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skillnaav/internal/common"
	"skillnaav/internal/common/mocks"
	"skillnaav/internal/memstore"
)

type MockEmailServiceForObserver struct {
	mock.Mock
}

func (m *MockEmailServiceForObserver) SendEmail(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

type MockObserver struct {
	mock.Mock
	name string
}

func (m *MockObserver) Update(event common.NotificationEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockObserver) Name() string {
	return m.name
}

func TestEmailObserver_Name(t *testing.T) {
	observer := NewEmailNotificationObserver(&MockEmailServiceForObserver{})
	assert.Equal(t, "email_observer", observer.Name())
}

func TestEmailObserver_Update(t *testing.T) {
	tests := []struct {
		name        string
		event       common.NotificationEvent
		setupMock   func(*MockEmailServiceForObserver)
		expectError bool
	}{
		{
			name: "no email in metadata",
			event: common.NotificationEvent{
				Title:    "Offer Letter Sent!",
				Message:  "Congratulations",
				Metadata: common.NotificationMetadata{},
			},
			setupMock: func(m *MockEmailServiceForObserver) {},
		},
		{
			name: "empty email",
			event: common.NotificationEvent{
				Title:    "Offer Letter Sent!",
				Metadata: common.NotificationMetadata{MetaEmail: ""},
			},
			setupMock: func(m *MockEmailServiceForObserver) {},
		},
		{
			name: "default subject and body",
			event: common.NotificationEvent{
				Title:    "Application Shortlisted",
				Message:  "Your application moved forward.",
				Metadata: common.NotificationMetadata{MetaEmail: "asha@example.com"},
			},
			setupMock: func(m *MockEmailServiceForObserver) {
				m.On("SendEmail", "asha@example.com", "SkillNaav: Application Shortlisted", "Your application moved forward.").
					Return(nil)
			},
		},
		{
			name: "explicit subject and body",
			event: common.NotificationEvent{
				Title:   "Offer Letter Sent!",
				Message: "Congratulations",
				Metadata: common.NotificationMetadata{
					MetaEmail:        "asha@example.com",
					MetaEmailSubject: "Your SkillNaav Offer Letter",
					MetaEmailBody:    "Hi Asha",
				},
			},
			setupMock: func(m *MockEmailServiceForObserver) {
				m.On("SendEmail", "asha@example.com", "Your SkillNaav Offer Letter", "Hi Asha").Return(nil)
			},
		},
		{
			name: "smtp failure",
			event: common.NotificationEvent{
				Title:    "Offer Letter Sent!",
				Message:  "Congratulations",
				Metadata: common.NotificationMetadata{MetaEmail: "asha@example.com"},
			},
			setupMock: func(m *MockEmailServiceForObserver) {
				m.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emailService := &MockEmailServiceForObserver{}
			tt.setupMock(emailService)

			err := NewEmailNotificationObserver(emailService).Update(tt.event)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "failed to send email")
			} else {
				assert.NoError(t, err)
			}
			emailService.AssertExpectations(t)
		})
	}
}

func TestNotificationManager_SubscribeNotify(t *testing.T) {
	nm := NewNotificationManager()
	event := common.NotificationEvent{StudentID: "64b7f1c2a9e4d3b2c1a09f8e", Title: "t", Message: "m"}

	first := &MockObserver{name: "first"}
	first.On("Update", event).Return(nil).Once()
	failing := &MockObserver{name: "failing"}
	failing.On("Update", event).Return(errors.New("boom")).Once()

	nm.Subscribe(first)
	nm.Subscribe(failing)
	nm.Notify(event)

	first.AssertExpectations(t)
	failing.AssertExpectations(t)
}

func TestNotificationManager_Unsubscribe(t *testing.T) {
	nm := NewNotificationManager()
	observer := &MockObserver{name: "gone"}

	nm.Subscribe(observer)
	nm.Unsubscribe(observer)
	nm.Notify(common.NotificationEvent{Title: "t"})

	observer.AssertNotCalled(t, "Update", mock.Anything)
}

func TestNotificationManager_ConcurrentNotify(t *testing.T) {
	nm := NewNotificationManager()
	observer := &MockObserver{name: "counter"}
	observer.On("Update", mock.Anything).Return(nil)
	nm.Subscribe(observer)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nm.Notify(common.NotificationEvent{Title: "t"})
		}()
	}
	wg.Wait()

	observer.AssertNumberOfCalls(t, "Update", 20)
}

func TestEmailObserver_OfferSentEscapesHTML(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	emailService := mocks.NewMockEmailService(ctrl)
	emailService.EXPECT().SendEmail(
		"asha@example.com",
		"Your SkillNaav Offer Letter",
		`Hi &lt;b&gt;Asha&lt;/b&gt;, <a href="https://cdn/offer.pdf?a=1&amp;b=&#34;x&#34;">download your offer letter</a>.`,
	).Return(nil)

	nm := NewNotificationManager()
	nm.Subscribe(NewEmailNotificationObserver(emailService))
	dispatcher := NewDispatcher(memstore.NewNotificationRepository(memstore.New()), nm)

	_, err := dispatcher.SendOfferSent(context.Background(), &common.Offer{
		StudentID:   "64b7f1c2a9e4d3b2c1a09f8e",
		Name:        "<b>Asha</b>",
		Email:       "asha@example.com",
		Position:    "Backend Intern",
		DocumentURL: `https://cdn/offer.pdf?a=1&b="x"`,
	})
	require.NoError(t, err)
}

func TestEmailObserver_FailureDoesNotFailDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	emailService := mocks.NewMockEmailService(ctrl)
	emailService.EXPECT().SendEmail("asha@example.com", gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	nm := NewNotificationManager()
	nm.Subscribe(NewEmailNotificationObserver(emailService))
	repo := memstore.NewNotificationRepository(memstore.New())
	dispatcher := NewDispatcher(repo, nm)

	n, err := dispatcher.SendApplicationStatus(context.Background(), "64b7f1c2a9e4d3b2c1a09f8e", "Backend Intern", "Shortlisted", "asha@example.com")
	require.NoError(t, err)

	stored, err := repo.ByID(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Application Shortlisted", stored.Title)
}
