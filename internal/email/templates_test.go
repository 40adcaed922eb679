package email

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplates_Render(t *testing.T) {
	tm, err := NewDefaultTemplateManager("")
	require.NoError(t, err)

	body, err := tm.Render(TemplateTaskApproved, TemplateData{
		"Name":   "Asha",
		"Title":  "Landing page",
		"Amount": "$500.00",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Landing page")
	assert.Contains(t, body, "$500.00")

	body, err = tm.Render(TemplateTaskRejected, TemplateData{"Name": "Asha", "Title": "x"})
	require.NoError(t, err)
	assert.NotContains(t, body, "Feedback")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	tm := NewTemplateManager()
	_, err := tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestTemplateManager_DirOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TemplateAccountStatus+".html"), []byte("custom {{.Status}}"), 0o644))

	tm, err := NewDefaultTemplateManager(dir)
	require.NoError(t, err)

	body, err := tm.Render(TemplateAccountStatus, TemplateData{"Status": "active"})
	require.NoError(t, err)
	assert.Equal(t, "custom active", body)
}

func TestGomailProvider_Validate(t *testing.T) {
	p := NewGomailProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587}, nil)
	assert.Error(t, p.Validate())

	p = NewGomailProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "a@b.c"}, nil)
	assert.NoError(t, p.Validate())
	assert.Error(t, p.Send(&Email{Subject: "no recipients"}))
}
