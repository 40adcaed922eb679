package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает новый менеджер шаблонов
func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates загружает шаблоны из директории
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}

// Имена встроенных шаблонов уведомлений
const (
	TemplateAccountStatus      = "account_status"
	TemplateTaskAssigned       = "task_assigned"
	TemplateTaskApproved       = "task_approved"
	TemplateTaskRejected       = "task_rejected"
	TemplateWithdrawalApproved = "withdrawal_approved"
	TemplateWithdrawalRejected = "withdrawal_rejected"
)

var defaultTemplates = map[string]string{
	TemplateAccountStatus: `<p>Hi {{.Name}},</p>
<p>Your account status is now <b>{{.Status}}</b>.</p>`,
	TemplateTaskAssigned: `<p>Hi {{.Name}},</p>
<p>You have been assigned a new task: <b>{{.Title}}</b>.</p>
<p>Deadline: {{.Deadline}}. Payout: {{.Payout}}.</p>`,
	TemplateTaskApproved: `<p>Hi {{.Name}},</p>
<p>Your work on <b>{{.Title}}</b> was approved. {{.Amount}} has been added to your balance.</p>`,
	TemplateTaskRejected: `<p>Hi {{.Name}},</p>
<p>Your work on <b>{{.Title}}</b> was not accepted.</p>
{{if .Feedback}}<p>Feedback: {{.Feedback}}</p>{{end}}`,
	TemplateWithdrawalApproved: `<p>Hi {{.Name}},</p>
<p>Your withdrawal of {{.Amount}} has been processed.</p>`,
	TemplateWithdrawalRejected: `<p>Hi {{.Name}},</p>
<p>Your withdrawal request of {{.Amount}} was rejected. The amount stays on your balance.</p>`,
}

// NewDefaultTemplateManager - менеджер со встроенными шаблонами.
// Файлы из dirPath (если задан) перекрывают встроенные по имени.
func NewDefaultTemplateManager(dirPath string) (*TemplateManager, error) {
	tm := NewTemplateManager()
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	if dirPath != "" {
		if err := tm.LoadTemplates(dirPath); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// GetTemplate возвращает шаблон по имени (для тестирования)
func (tm *TemplateManager) GetTemplate(name string) *template.Template {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()
	return tm.templates[name]
}

// TemplateNames возвращает список имен загруженных шаблонов
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}
