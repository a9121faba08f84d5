package notif

import (
	"fmt"
	"log"
	"sync"

	"skillnaav/internal/common"
)

// Metadata keys read by the email observer.
const (
	MetaEmail        = "email"
	MetaEmailSubject = "email_subject"
	MetaEmailBody    = "email_body"
)

// NotificationManager fans persisted notifications out to side-channel
// observers. Delivery is synchronous and observer failures are only logged.
type NotificationManager struct {
	observers map[string]common.Observer
	mu        sync.RWMutex
}

func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		observers: make(map[string]common.Observer),
	}
}

func (nm *NotificationManager) Subscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	nm.observers[observer.Name()] = observer
	log.Printf("Observer %s subscribed", observer.Name())
}

func (nm *NotificationManager) Unsubscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	delete(nm.observers, observer.Name())
	log.Printf("Observer %s unsubscribed", observer.Name())
}

func (nm *NotificationManager) Notify(event common.NotificationEvent) {
	nm.mu.RLock()
	observers := make([]common.Observer, 0, len(nm.observers))
	for _, obs := range nm.observers {
		observers = append(observers, obs)
	}
	nm.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			log.Printf("Observer %s update failed: %v", observer.Name(), err)
		}
	}
}

type EmailNotificationObserver struct {
	emailService common.EmailService
}

func NewEmailNotificationObserver(emailService common.EmailService) *EmailNotificationObserver {
	return &EmailNotificationObserver{
		emailService: emailService,
	}
}

func (e *EmailNotificationObserver) Name() string {
	return "email_observer"
}

func (e *EmailNotificationObserver) Update(event common.NotificationEvent) error {
	email, ok := event.Metadata[MetaEmail].(string)
	if !ok || email == "" {
		return nil // No email provided
	}

	subject, _ := event.Metadata[MetaEmailSubject].(string)
	if subject == "" {
		subject = fmt.Sprintf("SkillNaav: %s", event.Title)
	}
	body, _ := event.Metadata[MetaEmailBody].(string)
	if body == "" {
		body = event.Message
	}

	if err := e.emailService.SendEmail(email, subject, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email notification sent to: %s", email)
	return nil
}
