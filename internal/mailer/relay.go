package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/skserveur/storefront/pkg/logger"
	"github.com/valyala/fasthttp"
)

var ErrNoAvailableRelays = errors.New("no available relays")

type relayPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type relayTarget struct {
	name string
	url  string
}

// RelaySender posts emails to an HTTP mail relay, falling back to the backup
// relay when the primary fails.
type RelaySender struct {
	targets []relayTarget
	client  *fasthttp.Client
	timeout time.Duration
}

func NewRelaySender(primaryURL, backupURL string) (*RelaySender, error) {
	if primaryURL == "" {
		return nil, errors.New("primary relay url is required")
	}

	timeout := 10 * time.Second
	targets := []relayTarget{{name: "primary", url: primaryURL}}
	if backupURL != "" {
		targets = append(targets, relayTarget{name: "backup", url: backupURL})
	}

	return &RelaySender{
		targets: targets,
		client: &fasthttp.Client{
			MaxConnsPerHost:     64,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 60 * time.Second,
		},
		timeout: timeout,
	}, nil
}

func (s *RelaySender) Send(ctx context.Context, email *Email) error {
	body, err := json.Marshal(relayPayload{
		To:      email.To,
		Subject: email.Subject,
		Body:    email.Body,
	})
	if err != nil {
		return err
	}

	var lastErr error = ErrNoAvailableRelays
	for _, target := range s.targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.post(target.url, body); err != nil {
			logger.Warn("relay delivery failed", "relay", target.name, "error", err)
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

func (s *RelaySender) post(url string, body []byte) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		return err
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return fmt.Errorf("relay returned status %d", code)
	}
	return nil
}
