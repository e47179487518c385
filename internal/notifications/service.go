// Package notifications delivers top-story digests to the editorial team
// after scheduled discovery runs.
package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/config"
	"github.com/LotusFelix/BoredPanda-Content-Sourcing-Automation/internal/models"
)

// Notifier sends a digest of discovered stories.
type Notifier interface {
	SendDigest(posts []models.Post) error
}

// Service sends digests via Teams webhook and/or email, whichever is
// configured. Both failing is an error; one channel failing is logged only.
type Service struct {
	config *config.Config
	client *resty.Client
}

var _ Notifier = (*Service)(nil)

// NewService creates a notification service.
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// teamsMessage is the MessageCard payload Teams webhooks accept.
type teamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []teamsSection `json:"sections,omitempty"`
}

type teamsSection struct {
	ActivityTitle string `json:"activityTitle,omitempty"`
	ActivityText  string `json:"activityText,omitempty"`
	Markdown      bool   `json:"markdown,omitempty"`
}

// SendDigest delivers the top stories through every configured channel.
func (s *Service) SendDigest(posts []models.Post) error {
	if len(posts) == 0 {
		logrus.Info("No stories to notify about, skipping digest")
		return nil
	}

	var errs []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendTeams(posts); err != nil {
			logrus.Errorf("Teams digest failed: %v", err)
			errs = append(errs, err.Error())
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(posts); err != nil {
			logrus.Errorf("Email digest failed: %v", err)
			errs = append(errs, err.Error())
		}
	}

	if s.config.TeamsWebhookURL == "" && s.config.NotificationEmail == "" {
		logrus.Debug("No notification channels configured")
		return nil
	}

	if len(errs) > 0 && len(errs) == channelCount(s.config) {
		return fmt.Errorf("all notification channels failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func channelCount(cfg *config.Config) int {
	count := 0
	if cfg.TeamsWebhookURL != "" {
		count++
	}
	if cfg.NotificationEmail != "" {
		count++
	}
	return count
}

func (s *Service) sendTeams(posts []models.Post) error {
	sections := make([]teamsSection, 0, len(posts))
	for i, post := range posts {
		if i >= 10 {
			break
		}
		sections = append(sections, teamsSection{
			ActivityTitle: fmt.Sprintf("%.0f pts | %s | %s", post.ViralityScore, post.Platform, post.Category),
			ActivityText:  fmt.Sprintf("%s<br/>[Source](%s)", snippet(post.Text, 200), post.URL),
			Markdown:      true,
		})
	}

	msg := teamsMessage{
		Type:     "MessageCard",
		Context:  "https://schema.org/extensions",
		Title:    "Viral Content Digest",
		Text:     fmt.Sprintf("Top %d viral story candidates discovered", len(posts)),
		Sections: sections,
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post(s.config.TeamsWebhookURL)
	if err != nil {
		return fmt.Errorf("teams webhook: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("teams webhook returned status %d", resp.StatusCode())
	}
	return nil
}

var emailTemplate = template.Must(template.New("digest").Parse(`
<h2>Viral Content Digest</h2>
<p>{{len .}} story candidates, ranked by virality score.</p>
<table border="1" cellpadding="6" cellspacing="0">
	<tr><th>Score</th><th>Platform</th><th>Category</th><th>Story</th><th>Engagement</th></tr>
	{{range .}}
	<tr>
		<td>{{printf "%.1f" .ViralityScore}}</td>
		<td>{{.Platform}}</td>
		<td>{{.Category}}</td>
		<td><a href="{{.URL}}">{{.Snippet}}</a></td>
		<td>{{.Engagement}}</td>
	</tr>
	{{end}}
</table>
`))

type emailRow struct {
	models.Post
	Snippet    string
	Engagement int
}

func (s *Service) sendEmail(posts []models.Post) error {
	rows := make([]emailRow, 0, len(posts))
	for _, post := range posts {
		rows = append(rows, emailRow{
			Post:       post,
			Snippet:    snippet(post.Text, 120),
			Engagement: post.TotalEngagement(),
		})
	}

	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, rows); err != nil {
		return fmt.Errorf("digest template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.config.SMTPUsername)
	msg.SetHeader("To", s.config.NotificationEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Viral Content Digest - %s", time.Now().Format("Jan 2, 2006")))
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func snippet(text string, max int) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if text == "" {
		return "(no text)"
	}
	runes := []rune(text)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return text
}
