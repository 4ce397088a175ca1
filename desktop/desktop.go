// Package desktop turns the server into a single-user desktop app by opening
// the meal grid in the default browser once the server answers.
package desktop

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mealtracker/meal-tracker/utils"
	"github.com/pkg/browser"
)

// StartPath is the page the shell opens.
const StartPath = "/daily-meals/"

type Launcher struct {
	BaseURL      string
	Client       *http.Client
	Open         func(url string) error
	PollInterval time.Duration
}

func NewLauncher(baseURL string) *Launcher {
	return &Launcher{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Client:       &http.Client{Timeout: 2 * time.Second},
		Open:         browser.OpenURL,
		PollInterval: 200 * time.Millisecond,
	}
}

// URL is the address handed to the browser.
func (l *Launcher) URL() string {
	return l.BaseURL + StartPath
}

// WaitReady polls /ping until it answers 200 or ctx ends.
func (l *Launcher) WaitReady(ctx context.Context) error {
	ticker := time.NewTicker(l.PollInterval)
	defer ticker.Stop()

	for {
		if l.ping(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("server at %s not ready: %w", l.BaseURL, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *Launcher) ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL+"/ping", nil)
	if err != nil {
		return false
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Launch waits for the server and opens the start page.
func (l *Launcher) Launch(ctx context.Context) error {
	if err := l.WaitReady(ctx); err != nil {
		return err
	}
	url := l.URL()
	utils.InfoLogger.Printf("Opening %s", url)
	if err := l.Open(url); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
