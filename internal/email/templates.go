package email

import (
	"fmt"
	"html"
	"strings"

	"ranklens/internal/alerts"
	"ranklens/internal/config"
	"ranklens/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .button:hover { background: #1d4ed8; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .value { color: #6b7280; }
        .fire { color: #dc2626; }
        .smoking { color: #d97706; }
        .hot { color: #db2777; }
        code { background: #e5e7eb; padding: 2px 6px; border-radius: 4px; font-family: monospace; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// AlertDigest generates the post-scan alert summary email for a site.
func (t *Templates) AlertDigest(site *models.Site, counts alerts.Counts, flagged []models.KeywordView) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] %d keyword(s) flagged on %s", t.cfg.SiteTitle, len(flagged), site.Name)

	var rowsHTML strings.Builder
	var rowsText strings.Builder

	for _, view := range flagged {
		position := "not ranking"
		if view.Keyword.Position != nil {
			position = fmt.Sprintf("%.1f", *view.Keyword.Position)
		}

		var flagsHTML strings.Builder
		for _, flag := range view.Alerts {
			flagsHTML.WriteString(fmt.Sprintf(`<span class="%s">%s</span> `, flag, flag))
		}

		rowsHTML.WriteString(fmt.Sprintf(`
            <div class="info-box">
                <p><span class="label">Keyword:</span> <code>%s</code></p>
                <p><span class="label">Position:</span> %s</p>
                <p><span class="label">Intent:</span> %s (%s)</p>
                <p><span class="label">Value:</span> %d</p>
                <p><span class="label">Alerts:</span> %s</p>
            </div>
        `,
			html.EscapeString(view.Keyword.Keyword),
			position,
			html.EscapeString(view.Intent),
			html.EscapeString(view.IntentSource),
			view.Value,
			flagsHTML.String(),
		))

		rowsText.WriteString(fmt.Sprintf("\n- %s (position %s, value %d)\n  Intent: %s (%s)\n  Alerts: %s\n",
			view.Keyword.Keyword,
			position,
			view.Value,
			view.Intent,
			view.IntentSource,
			strings.Join(view.Alerts, ", "),
		))
	}

	content := fmt.Sprintf(`
        <p>The latest scan of <a href="%s">%s</a> raised alerts on %d keyword(s):</p>

        <div class="info-box">
            <p><span class="label fire">Fire:</span> %d &nbsp; <span class="label smoking">Smoking:</span> %d &nbsp; <span class="label hot">Hot:</span> %d</p>
        </div>
        %s
        <p style="text-align: center;">
            <a href="%s/sites/%s" class="button">Open Dashboard</a>
        </p>
    `,
		html.EscapeString(site.URL),
		html.EscapeString(site.Name),
		len(flagged),
		counts.Fire,
		counts.Smoking,
		counts.Hot,
		rowsHTML.String(),
		t.cfg.BaseURL,
		site.ID,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Keyword Alert Digest

Site: %s (%s)
Fire: %d  Smoking: %d  Hot: %d

Flagged keywords:
%s
Dashboard: %s/sites/%s

--
%s
%s`,
		site.Name,
		site.URL,
		counts.Fire,
		counts.Smoking,
		counts.Hot,
		rowsText.String(),
		t.cfg.BaseURL,
		site.ID,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}
