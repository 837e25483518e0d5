package main

import (
	"fmt"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

const emailLayout = `<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: %s; color: white; padding: 20px; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>%s</h2></div>
        %s
    </div>
</body>
</html>`

func emailTemplates() []dto.CreateEmailTemplateRequest {
	return []dto.CreateEmailTemplateRequest{
		{
			Name:            "Interview Process Started",
			Description:     "Sent when the interview process of an application starts",
			Type:            entity.EmailTypeProcessStarted,
			SubjectTemplate: "Your interview process for {{ job_title }} has started",
			HTMLContent: layout("#00467f", "Interview Process Started", `
        <p>Dear {{ candidate_name }},</p>
        <p>Thank you for applying to {{ job_title }} at {{ company_name }}.</p>
        <p>We will contact you soon to schedule your first interview.</p>`),
		},
		{
			Name:            "Interview Scheduled",
			Description:     "Sent when an interview step is scheduled",
			Type:            entity.EmailTypeInterviewSched,
			SubjectTemplate: "{{ interview_type }} Interview Scheduled",
			HTMLContent: layout("#17a2b8", "Interview Scheduled", `
        <p>Dear {{ candidate_name }},</p>
        <p>Your {{ interview_type }} interview is scheduled for {{ scheduled_at }} ({{ duration }} minutes).</p>
        <p>Location: {{ location }}</p>
        {% if meeting_link %}<p>Meeting link: <a href="{{ meeting_link }}">{{ meeting_link }}</a></p>{% endif %}`),
		},
		{
			Name:            "Interview Success Template",
			Description:     "Template for successful interview results",
			Type:            entity.EmailTypeInterviewSuccess,
			SubjectTemplate: "Congratulations! {{ interview_type }} Interview Passed",
			HTMLContent: layout("#28a745", "Congratulations!", `
        <p>Dear {{ candidate_name }},</p>
        <p>We're pleased to inform you that you have successfully passed the {{ interview_type }} interview.</p>
        <p>{{ feedback }}</p>
        {% if is_final_step %}
        <p>We will contact you soon with the next steps.</p>
        {% else %}
        <p>We will schedule your next interview soon.</p>
        {% endif %}`),
		},
		{
			Name:            "Interview Failure Template",
			Description:     "Template for unsuccessful interview results",
			Type:            entity.EmailTypeInterviewFailure,
			SubjectTemplate: "Interview Results: {{ interview_type }}",
			HTMLContent: layout("#6c757d", "Interview Results", `
        <p>Dear {{ candidate_name }},</p>
        <p>Thank you for participating in the {{ interview_type }} interview.</p>
        <p>After careful consideration, we regret to inform you that we will not be moving forward with your application.</p>
        <p>{{ feedback }}</p>
        <p>We wish you the best in your future endeavors.</p>`),
		},
	}
}

func layout(headerColor, title, body string) string {
	return fmt.Sprintf(emailLayout, headerColor, title, body)
}
