package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/brandlens/visibility-bot/internal/config"
	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service delivers visibility reports and alerts via Teams and email.
// Reports are plain text and Teams message cards; rendered report documents
// are out of scope for the bot.
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle string      `json:"activityTitle,omitempty"`
	ActivityText  string      `json:"activityText,omitempty"`
	Facts         []TeamsFact `json:"facts,omitempty"`
	Markdown      bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendReport sends a visibility report via all configured channels
func (s *Service) SendReport(report *models.Report) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(s.buildTeamsMessage(report)); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent report to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		subject := fmt.Sprintf("%s 브랜드 가시성 리포트 (%s)", report.BrandName, report.Period)
		if err := s.sendEmail(subject, buildReportText(report)); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SendAlert delivers an urgent notification, e.g. a sharp score drop.
func (s *Service) SendAlert(alert *models.Alert) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		message := &TeamsMessage{
			Type:    "MessageCard",
			Context: "https://schema.org/extensions",
			Title:   alert.Title,
			Text:    alert.Message,
		}
		if err := s.sendToTeams(message); err != nil {
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		}
	}

	if s.config.NotificationEmail != "" {
		body := fmt.Sprintf("%s\n\nKeyword: %s\nTime: %s\n", alert.Message, alert.Keyword,
			alert.CreatedAt.Format("2006-01-02 15:04:05 UTC"))
		if err := s.sendEmail(alert.Title, body); err != nil {
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("alert delivery errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(message *TeamsMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsMessage(report *models.Report) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("%s Visibility Report - %s", report.BrandName, strings.Title(report.Period)),
		Text:    fmt.Sprintf("Scored %d keywords across %d provider answers", len(report.Scores), report.TotalAnswers),
	}

	facts := []TeamsFact{
		{Name: "Generated", Value: report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{Name: "Share of Voice", Value: fmt.Sprintf("%.1f%%", report.ShareOfVoice)},
	}
	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	var lines []string
	for _, score := range report.Scores {
		line := fmt.Sprintf("**%s** — %d/100", score.Keyword, score.OverallScore)
		if score.Trend != nil && score.Trend.PreviousScore != nil {
			line += fmt.Sprintf(" (%s %+d%% vs %s ago)", score.Trend.Direction, score.Trend.ChangePercent, score.Trend.Period)
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Keyword Scores",
			ActivityText:  strings.Join(lines, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) sendEmail(subject, textBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func buildReportText(report *models.Report) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("%s Brand Visibility Report - %s\n", report.BrandName, strings.Title(report.Period)))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Keywords scored: %d\n", len(report.Scores)))
	text.WriteString(fmt.Sprintf("Provider answers analyzed: %d\n", report.TotalAnswers))
	text.WriteString(fmt.Sprintf("Share of Voice: %.1f%%\n", report.ShareOfVoice))

	if len(report.Scores) > 0 {
		text.WriteString("\nKEYWORD SCORES\n")
		text.WriteString("==============\n")

		for i, score := range report.Scores {
			text.WriteString(fmt.Sprintf("\n%d. %s: %d/100\n", i+1, score.Keyword, score.OverallScore))
			text.WriteString(fmt.Sprintf("   Mention frequency: %d | Position: %d | Sentiment: %d | Prominence: %d\n",
				score.Components.MentionFrequency,
				score.Components.PositionScore,
				score.Components.SentimentScore,
				score.Components.ProminenceScore))

			if score.Trend != nil && score.Trend.PreviousScore != nil {
				text.WriteString(fmt.Sprintf("   Trend: %s %+d%% (previous %d, %s window)\n",
					score.Trend.Direction, score.Trend.ChangePercent, *score.Trend.PreviousScore, score.Trend.Period))
			}

			for _, exposure := range score.Breakdown {
				line := fmt.Sprintf("   - %s: %d (%d mentions", exposure.Provider, exposure.Score, exposure.MentionCount)
				if exposure.AvgPosition != nil {
					line += fmt.Sprintf(", avg position %.1f", *exposure.AvgPosition)
				}
				if exposure.Sentiment != "" {
					line += fmt.Sprintf(", %s", exposure.Sentiment)
				}
				text.WriteString(line + ")\n")
			}
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by the Brand Visibility Bot.\n")

	return text.String()
}
