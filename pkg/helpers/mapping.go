package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/fashion-storefront/pkg/mailer"
	mailtpl "github.com/oksasatya/fashion-storefront/pkg/mailer/templates"
)

// SubjectFor is used when a template renders an empty subject.
func SubjectFor(template string) string {
	switch strings.ToLower(template) {
	case mailtpl.OrderConfirmation:
		return "Your order has been placed"
	case mailtpl.Welcome:
		return "Welcome to the store"
	default:
		return "Notification"
	}
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
