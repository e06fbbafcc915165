package email

import (
	"context"
	"log"

	"github.com/google/uuid"

	"ranklens/internal/alerts"
	"ranklens/internal/config"
	"ranklens/internal/models"
)

// OwnerEmailGetter is an interface for resolving a site owner's email.
type OwnerEmailGetter interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Notifier sends alert digest emails after scans.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
	yamlCfg   *config.YAMLConfig
	db        OwnerEmailGetter
}

// NewNotifier creates a new email notifier. yamlCfg may be nil.
func NewNotifier(cfg *config.Config, yamlCfg *config.YAMLConfig, db OwnerEmailGetter) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
		yamlCfg:   yamlCfg,
		db:        db,
	}
}

// SendAlertDigest emails the site owner (plus any configured extra
// recipients) a summary of the keywords flagged in the latest scan.
// Scans flagging fewer keywords than the configured alerts.min_flags
// threshold are skipped.
func (n *Notifier) SendAlertDigest(site *models.Site, counts alerts.Counts, flagged []models.KeywordView) error {
	if !n.service.IsEnabled() || len(flagged) < n.yamlCfg.DigestThreshold() {
		return nil
	}

	recipients := n.yamlCfg.DigestRecipients()

	if n.db != nil {
		owner, err := n.db.GetUserByID(context.Background(), site.OwnerID)
		if err != nil {
			log.Printf("Failed to get site owner for digest: %v", err)
		} else if owner.Email != "" {
			recipients = append(recipients, owner.Email)
		}
	}

	if len(recipients) == 0 {
		log.Printf("No recipients for alert digest (%s)", site.URL)
		return nil
	}

	subject, htmlBody, textBody := n.templates.AlertDigest(site, counts, flagged)
	n.service.SendAsync(recipients, subject, htmlBody, textBody)
	return nil
}
