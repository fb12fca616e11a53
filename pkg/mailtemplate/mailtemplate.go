package mailtemplate

import (
	"regexp"

	"go-ats-core/internal/domain"
)

// placeholderRe matches {{name}} tokens. Unknown names are left in
// place verbatim, so text/template is not usable here.
var placeholderRe = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Template IDs referenced by the automation rule catalog.
const (
	TemplateAutoRejection     = "auto_rejection"
	TemplateScreeningFollowup = "screening_followup"
	TemplateInterviewReminder = "interview_reminder"
	TemplateFeedbackRequest   = "feedback_request"
	TemplateOwnerNotification = "owner_notification"
)

// Catalog is the static email template catalog. Read-only after New,
// safe for concurrent use.
type Catalog struct {
	order     []string
	templates map[string]domain.EmailTemplate
}

func New() *Catalog {
	templates := []domain.EmailTemplate{
		{
			ID:      TemplateAutoRejection,
			Subject: "Update on your application for {{job_title}}",
			Body: "Dear {{candidate_name}},\n\n" +
				"Thank you for your interest in {{job_title}} at {{company_name}}. " +
				"After careful consideration we will not be moving forward with your application at this time.\n\n" +
				"We encourage you to apply for future openings that match your profile.\n\n" +
				"Best regards,\n{{company_name}} Recruiting",
			Variables: []string{"candidate_name", "job_title", "company_name"},
		},
		{
			ID:      TemplateScreeningFollowup,
			Subject: "Next steps for your application at {{company_name}}",
			Body: "Dear {{candidate_name}},\n\n" +
				"Your application is still in screening. Please complete any outstanding steps " +
				"so we can keep your application moving.\n\n" +
				"Best regards,\n{{company_name}} Recruiting",
			Variables: []string{"candidate_name", "company_name"},
		},
		{
			ID:      TemplateInterviewReminder,
			Subject: "Reminder: your interview on {{interview_date}}",
			Body: "Dear {{candidate_name}},\n\n" +
				"This is a reminder of your upcoming interview for {{job_title}} on {{interview_date}}.\n" +
				"Please be ready a few minutes early.\n\n" +
				"Best regards,\n{{company_name}} Recruiting",
			Variables: []string{"candidate_name", "job_title", "interview_date", "company_name"},
		},
		{
			ID:      TemplateFeedbackRequest,
			Subject: "How did your interview go?",
			Body: "Dear {{candidate_name}},\n\n" +
				"Thank you for interviewing with {{company_name}}. We would appreciate a short note " +
				"about your experience while we prepare our decision.\n\n" +
				"Best regards,\n{{company_name}} Recruiting",
			Variables: []string{"candidate_name", "company_name"},
		},
		{
			ID:      TemplateOwnerNotification,
			Subject: "Action needed: {{candidate_name}} ({{rule_name}})",
			Body: "The candidate {{candidate_name}} was matched by the automation rule {{rule_name}}.\n" +
				"Please review the candidate record.",
			Variables: []string{"candidate_name", "rule_name"},
		},
	}

	c := &Catalog{templates: make(map[string]domain.EmailTemplate, len(templates))}
	for _, t := range templates {
		c.order = append(c.order, t.ID)
		c.templates[t.ID] = t
	}
	return c
}

// List returns all templates in catalog order.
func (c *Catalog) List() []domain.EmailTemplate {
	out := make([]domain.EmailTemplate, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.templates[id])
	}
	return out
}

// Get returns the template or nil when the id is unknown.
func (c *Catalog) Get(id string) *domain.EmailTemplate {
	t, ok := c.templates[id]
	if !ok {
		return nil
	}
	return &t
}

// Render substitutes every bound {{name}} in subject and body.
// Unbound placeholders are kept verbatim.
func Render(tpl domain.EmailTemplate, vars map[string]string) (subject, body string) {
	return renderString(tpl.Subject, vars), renderString(tpl.Body, vars)
}

func renderString(s string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(token string) string {
		name := placeholderRe.FindStringSubmatch(token)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return token
	})
}
