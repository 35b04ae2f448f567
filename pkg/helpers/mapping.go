package helpers

import (
	"fmt"
	"strings"

	"github.com/keeper31337/homepage-api/pkg/mailer"
)

// templateAliases maps older template names still found on the queue.
var templateAliases = map[string]string{
	"verify_email":  "email_auth",
	"email_verify":  "email_auth",
	"book_overdue":  "overdue_reminder",
	"return_remind": "overdue_reminder",
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// NormalizeTemplate lowercases the template name and resolves aliases.
func NormalizeTemplate(job *mailer.EmailJob) {
	name := strings.ToLower(strings.TrimSpace(job.Template))
	if alias, ok := templateAliases[name]; ok {
		name = alias
	}
	job.Template = name
}
