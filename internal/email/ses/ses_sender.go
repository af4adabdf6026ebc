package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"locali/internal/email"
	"locali/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendFlaggedListingAlert(ctx context.Context, toEmail string, alert port.FlaggedListingAlert) error {
	reviewURL := email.ReviewURL(s.frontendURL, alert.ListingID)
	subject := email.FlaggedAlertSubject(alert)
	textBody := email.FlaggedAlertText(alert, reviewURL)
	htmlBody := wrapHTML("Listing flagged for review", fmt.Sprintf(
		`<p><strong>%s</strong> was held back from the directory.</p><p>Reason: %s</p>`,
		html.EscapeString(alert.ListingName), html.EscapeString(alert.Reason)), reviewURL, "Open review queue")
	return s.send(ctx, toEmail, subject, textBody, htmlBody)
}

func (s *sesSender) SendReviewDecision(ctx context.Context, toEmail string, decision port.ReviewDecision) error {
	listingURL := email.StudioURL(s.frontendURL, decision.ListingID)
	subject := email.ReviewDecisionSubject(decision)
	textBody := email.ReviewDecisionText(decision, listingURL)
	htmlBody := wrapHTML("Review complete", fmt.Sprintf(
		`<p>Your listing <strong>%s</strong> was %s.</p><p>%s</p>`,
		html.EscapeString(decision.ListingName), email.DecisionVerb(decision.Approved),
		html.EscapeString(decision.Notes)), listingURL, "Open your studio")
	return s.send(ctx, toEmail, subject, textBody, htmlBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, textBody, htmlBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func wrapHTML(title, content, linkURL, linkLabel string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s</h2>
  %s
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0F766E; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">%s</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Locali - Local Business Directory</p>
</body>
</html>`, html.EscapeString(title), content, linkURL, html.EscapeString(linkLabel))
}
