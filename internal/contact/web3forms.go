// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contact relays contact form submissions through the
// Web3Forms API, which forwards them as email. The site itself never
// sends mail.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client posts contact form submissions to Web3Forms.
type Client struct {
	accessKey string
	baseURL   string
	client    *http.Client
}

// NewClient creates a Web3Forms client. accessKey may be empty, in
// which case Send always fails with a user-visible message.
func NewClient(accessKey string) *Client {
	return &Client{
		accessKey: accessKey,
		baseURL:   "https://api.web3forms.com",
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether an access key is set.
func (c *Client) Configured() bool {
	return c.accessKey != ""
}

type submitRequest struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send relays one submission. The returned error's text is safe to
// show on the contact form; provider-reported failures surface the
// provider's own message.
func (c *Client) Send(ctx context.Context, name, email, message string) error {
	if c.accessKey == "" {
		return fmt.Errorf("contact form is not configured")
	}

	payload, err := json.Marshal(submitRequest{
		AccessKey: c.accessKey,
		Name:      name,
		Email:     email,
		Message:   message,
	})
	if err != nil {
		return fmt.Errorf("web3forms marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("web3forms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("web3forms http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("web3forms read body: %w", err)
	}

	var result submitResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("web3forms API error (status %d)", resp.StatusCode)
	}
	if !result.Success {
		if result.Message != "" {
			return fmt.Errorf("%s", result.Message)
		}
		return fmt.Errorf("web3forms API error (status %d)", resp.StatusCode)
	}

	return nil
}
