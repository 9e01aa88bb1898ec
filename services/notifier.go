package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"

	"ugc-monitor/models"
)

// Notifier pushes critical-finding alerts through shoutrrr service URLs
// (discord, telegram, smtp, ...). With no URLs configured it is a no-op.
type Notifier struct {
	sender *router.ServiceRouter
}

// NewNotifier builds a notifier from a comma-separated URL list. Invalid
// URLs disable notification rather than failing startup.
func NewNotifier(urls string) *Notifier {
	var targets []string
	for _, u := range strings.Split(urls, ",") {
		if u = strings.TrimSpace(u); u != "" {
			targets = append(targets, u)
		}
	}
	if len(targets) == 0 {
		return &Notifier{}
	}
	sender, err := shoutrrr.CreateSender(targets...)
	if err != nil {
		log.Printf("[Notifier] invalid notification URL, notifications disabled: %v", err)
		return &Notifier{}
	}
	log.Printf("[Notifier] notifications enabled (%d target(s))", len(targets))
	return &Notifier{sender: sender}
}

func (n *Notifier) Enabled() bool {
	return n.sender != nil
}

// CriticalFinding sends an alert for a newly stored critical video.
func (n *Notifier) CriticalFinding(v *models.Video) {
	if n.sender == nil {
		return
	}
	body := fmt.Sprintf("Critical finding: %q on channel %q (risk %d, %s)\n%s",
		v.Title, v.ChannelName, v.RiskScore, v.RiskLevel, v.VideoURL)
	params := types.Params{"title": "UGC Monitor: critical finding"}
	for _, err := range n.sender.Send(body, &params) {
		if err != nil {
			log.Printf("[Notifier] failed to send alert for %s: %v", v.VideoID, err)
		}
	}
}

// Test sends a test message so operators can verify their URLs.
func (n *Notifier) Test(msg string) error {
	if n.sender == nil {
		return fmt.Errorf("no notification URLs configured")
	}
	params := types.Params{"title": "UGC Monitor: test"}
	for _, err := range n.sender.Send(msg, &params) {
		if err != nil {
			return err
		}
	}
	return nil
}
