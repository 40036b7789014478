package email

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"

	"TickerBrief/internal/models"
)

//go:embed templates/newsletter.html
var newsletterTemplate string

// DeliveryError wraps a provider rejection. It fails the Run; any retry is
// the orchestrator's responsibility for the step as a whole.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email provider rejected send: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type Sender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	tmpl *template.Template
}

func NewSender(host string, port int, user, password, from string) (*Sender, error) {
	tmpl, err := template.New("newsletter").Parse(newsletterTemplate)
	if err != nil {
		return nil, fmt.Errorf("template parse error: %w", err)
	}

	return &Sender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		tmpl:     tmpl,
	}, nil
}

// Dispatch assembles the template parameters, renders the newsletter email
// and hands it to the SMTP provider. Provider errors surface as
// *DeliveryError.
func (s *Sender) Dispatch(
	ctx context.Context,
	to string,
	symbols []string,
	currentDate string,
	htmlBody string,
	preview string,
	articles []models.Article,
) error {
	params := TemplateParams(to, symbols, currentDate, htmlBody, articles)

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, params); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your %s newsletter — %s", strings.Join(symbols, ", "), currentDate))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return &DeliveryError{Err: err}
	}

	return nil
}

// TemplateParams builds the named-field mapping the email template consumes.
func TemplateParams(to string, symbols []string, currentDate, htmlBody string, articles []models.Article) map[string]interface{} {
	return map[string]interface{}{
		"to_email":           to,
		"ticker_symbols":     strings.Join(symbols, ", "),
		"ticker_count":       len(symbols),
		"article_count":      len(articles),
		"current_date":       currentDate,
		"newsletter_content": template.HTML(htmlBody),
		"articles_html":      template.HTML(BuildArticlesHTML(articles)),
	}
}

// BuildArticlesHTML concatenates one styled fragment per article: linked
// title, description, and a read-more link.
func BuildArticlesHTML(articles []models.Article) string {
	var sb strings.Builder
	for _, a := range articles {
		sb.WriteString(fmt.Sprintf(`<div style="background-color: #ffffff; border-radius: 8px; padding: 20px; margin-bottom: 20px; border-left: 3px solid #3b82f6;">
  <div style="font-size: 18px; font-weight: 600; color: #1f2937; margin-bottom: 10px;">
    <a href="%s" target="_blank" style="color: #1f2937; text-decoration: none;">%s</a>
  </div>
  <div style="color: #4b5563; margin-bottom: 12px; line-height: 1.6;">%s</div>
  <a href="%s" target="_blank" style="color: #3b82f6; text-decoration: none; font-size: 14px;">Read full article &rarr;</a>
</div>
`, a.URL, a.Title, a.Description, a.URL))
	}
	return sb.String()
}
