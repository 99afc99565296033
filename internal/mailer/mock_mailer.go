package mailer

import (
	"sync"
)

// SentEmail records one call to Send.
type SentEmail struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer is an in-memory Mailer for tests. Safe for concurrent use, since
// activation and confirmation emails are sent from goroutines.
type MockMailer struct {
	mu     sync.RWMutex
	emails []SentEmail
}

func NewMockMailer() *MockMailer {
	return &MockMailer{
		emails: make([]SentEmail, 0),
	}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.emails = append(m.emails, SentEmail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

func (m *MockMailer) SentEmails() []SentEmail {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emails := make([]SentEmail, len(m.emails))
	copy(emails, m.emails)

	return emails
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.emails = m.emails[:0]
}
