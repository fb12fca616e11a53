package mailtemplate_test

import (
	"strings"
	"testing"

	"go-ats-core/internal/domain"
	"go-ats-core/pkg/mailtemplate"

	"github.com/stretchr/testify/assert"
)

func TestRenderBindsAllVariables(t *testing.T) {
	tpl := domain.EmailTemplate{
		Subject: "Update on your application for {{job_title}}",
		Body:    "Dear {{candidate_name}},\n\nRegards,\n{{company_name}} Recruiting",
	}
	vars := map[string]string{
		"job_title":      "Backend Engineer",
		"candidate_name": "Alex Doe",
		"company_name":   "Acme",
	}

	subject, body := mailtemplate.Render(tpl, vars)

	assert.Equal(t, "Update on your application for Backend Engineer", subject)
	assert.Equal(t, "Dear Alex Doe,\n\nRegards,\nAcme Recruiting", body)
	assert.NotContains(t, subject, "{{")
	assert.NotContains(t, body, "{{")
}

func TestRenderKeepsUnboundPlaceholders(t *testing.T) {
	tpl := domain.EmailTemplate{
		Subject: "Reminder: {{interview_date}}",
		Body:    "Dear {{candidate_name}}, see you on {{interview_date}}.",
	}

	subject, body := mailtemplate.Render(tpl, map[string]string{"candidate_name": "Alex Doe"})

	assert.Equal(t, "Reminder: {{interview_date}}", subject)
	assert.Equal(t, "Dear Alex Doe, see you on {{interview_date}}.", body)
}

func TestRenderNilVariables(t *testing.T) {
	tpl := domain.EmailTemplate{Subject: "Hello {{candidate_name}}", Body: "plain text"}

	subject, body := mailtemplate.Render(tpl, nil)

	assert.Equal(t, "Hello {{candidate_name}}", subject)
	assert.Equal(t, "plain text", body)
}

func TestRenderIgnoresMalformedTokens(t *testing.T) {
	tpl := domain.EmailTemplate{
		Subject: "{{ spaced }} and {single} stay put",
		Body:    "{{candidate_name}}",
	}

	subject, body := mailtemplate.Render(tpl, map[string]string{
		" spaced ":       "nope",
		"single":         "nope",
		"candidate_name": "Alex Doe",
	})

	assert.Equal(t, "{{ spaced }} and {single} stay put", subject)
	assert.Equal(t, "Alex Doe", body)
}

func TestCatalogGet(t *testing.T) {
	catalog := mailtemplate.New()

	tpl := catalog.Get(mailtemplate.TemplateAutoRejection)
	assert.NotNil(t, tpl)
	assert.Equal(t, mailtemplate.TemplateAutoRejection, tpl.ID)

	assert.Nil(t, catalog.Get("does_not_exist"))
}

func TestCatalogList(t *testing.T) {
	catalog := mailtemplate.New()

	templates := catalog.List()
	assert.NotEmpty(t, templates)

	seen := map[string]bool{}
	for _, tpl := range templates {
		assert.False(t, seen[tpl.ID], "duplicate template id %s", tpl.ID)
		seen[tpl.ID] = true

		// Declared variables must actually appear somewhere in the template.
		text := tpl.Subject + "\n" + tpl.Body
		for _, name := range tpl.Variables {
			assert.True(t, strings.Contains(text, "{{"+name+"}}"),
				"template %s never uses declared variable %s", tpl.ID, name)
		}
	}
	assert.True(t, seen[mailtemplate.TemplateOwnerNotification])
}
