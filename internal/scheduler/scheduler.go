// Package scheduler drives periodic time-capsule sweeps.
package scheduler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"

	"github.com/ananya/saathi/internal/capsule"
)

type Scheduler struct {
	cron       *cron.Cron
	capsules   *capsule.Service
	webhookURL string
}

func New(capsules *capsule.Service, webhookURL string) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		capsules:   capsules,
		webhookURL: webhookURL,
	}
}

// Start registers the sweep job and begins running it. An invalid cron
// expression is an error; there is no fallback cadence.
func (s *Scheduler) Start(cronExpr string) error {
	if _, err := s.cron.AddFunc(cronExpr, s.sweep); err != nil {
		return fmt.Errorf("invalid sweep cron %q: %w", cronExpr, err)
	}
	s.cron.Start()
	log.Printf("scheduler: sweeping capsules on %q", cronExpr)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) sweep() {
	delivered, err := s.capsules.Sweep(time.Now())
	if err != nil {
		log.Printf("scheduler: sweep: %v", err)
		return
	}
	for _, d := range delivered {
		log.Printf("scheduler: delivered capsule %s (due %s)", d.ID, humanize.Time(d.ScheduledAt))
		s.notify(d)
	}
}

func (s *Scheduler) notify(d capsule.DeliveredCapsule) {
	if s.webhookURL == "" {
		return
	}
	content := fmt.Sprintf("[Time Capsule] %s", d.Message)
	if err := postWebhook(s.webhookURL, content); err != nil {
		log.Printf("scheduler: webhook for capsule %s: %v", d.ID, err)
	}
}

func postWebhook(url, content string) error {
	payload := map[string]string{"content": content}
	body, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
