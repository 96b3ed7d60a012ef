package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type MailjetConfig struct {
	MailjetBaseURL  string
	MailjetAPIToken string
	MailjetSender   string
}

type MailjetRepository struct {
	mailjetConfig MailjetConfig
	client        *http.Client
}

func NewMailjetRepository(cfg MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		mailjetConfig: cfg,
		client:        &http.Client{Timeout: 5 * time.Second},
	}
}

// Enabled reports whether an SMS token is configured.
func (r *MailjetRepository) Enabled() bool {
	return r.mailjetConfig.MailjetAPIToken != ""
}

type payloadSendSMS struct {
	Text string `json:"Text"`
	To   string `json:"To"`
	From string `json:"From"`
}

func (r *MailjetRepository) SendSMS(ctx context.Context, toPhone, message string) error {
	url := r.mailjetConfig.MailjetBaseURL + "/v4/sms-send"

	payloadByte, err := json.Marshal(payloadSendSMS{
		Text: message,
		To:   toPhone,
		From: r.mailjetConfig.MailjetSender,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadByte))
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Bearer "+r.mailjetConfig.MailjetAPIToken)

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("sms service return negative response %v: %s", res.StatusCode, string(bodyBytes))
}
