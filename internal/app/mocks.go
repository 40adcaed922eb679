package app

import (
	"sync"

	"gigwork_backend/internal/email"
)

// MockEmailProvider используется для тестов и локальной разработки.
// Письма не уходят, а копятся в Sent.
type MockEmailProvider struct {
	mu   sync.Mutex
	Sent []SentEmail
}

type SentEmail struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

func (m *MockEmailProvider) Send(msg *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentEmail{To: msg.To, Subject: msg.Subject})
	return nil
}

func (m *MockEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

// Templates возвращает имена шаблонов отправленных писем по порядку
func (m *MockEmailProvider) Templates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.Sent))
	for _, s := range m.Sent {
		names = append(names, s.Template)
	}
	return names
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }
