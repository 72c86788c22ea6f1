// Package auth builds authenticated Gmail API clients from OAuth2
// credentials and runs the one-time browser consent flow that mints
// the long-lived refresh token.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/bescka/fac-mcp/pkg/config"
	"github.com/bescka/fac-mcp/pkg/envfile"
)

const (
	callbackAddr = "localhost:9876"
	callbackURL  = "http://localhost:9876/"
)

// Scopes covers reading messages and creating drafts. Anything wider
// (send, delete, settings) is deliberately not requested.
var Scopes = []string{
	gmailapi.GmailReadonlyScope,
	gmailapi.GmailComposeScope,
}

func oauthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
}

// NewService builds a Gmail API service from the stored refresh token.
// Access tokens are minted and renewed transparently by the underlying
// token source.
func NewService(ctx context.Context, cfg *config.Config) (*gmailapi.Service, error) {
	if err := cfg.ValidateForGmail(); err != nil {
		return nil, err
	}
	oc := oauthConfig(cfg)
	tok := &oauth2.Token{RefreshToken: cfg.RefreshToken}
	client := oauth2.NewClient(ctx, oc.TokenSource(ctx, tok))

	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return svc, nil
}

// Login runs the interactive consent flow: opens the Google consent
// page in a browser, catches the redirect on a localhost listener,
// exchanges the code, and persists the refresh token into the
// settings file so later runs can authenticate non-interactively.
func Login(ctx context.Context, cfg *config.Config) error {
	if !cfg.HasClientCredentials() {
		return fmt.Errorf("GMAIL_CLIENT_ID and GMAIL_CLIENT_SECRET must be set before login")
	}

	oc := oauthConfig(cfg)
	oc.RedirectURL = callbackURL

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code parameter", http.StatusBadRequest)
			errCh <- fmt.Errorf("authorization callback carried no code")
			return
		}
		fmt.Fprint(w, "<html><body><h2>Authorization complete</h2>"+
			"<p>You can close this window and return to the terminal.</p></body></html>")
		codeCh <- code
	})

	srv := &http.Server{Addr: callbackAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("callback server: %w", err)
		}
	}()

	// AccessTypeOffline is what makes Google return a refresh token;
	// ApprovalForce ensures one is issued even on re-consent.
	authURL := oc.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Printf("Opening browser for Google authorization.\nIf nothing opens, visit:\n\n  %s\n\n", authURL)
	openBrowser(authURL)

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("authorization timed out after 5 minutes")
	case <-ctx.Done():
		return ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	tok, err := oc.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if tok.RefreshToken == "" {
		return fmt.Errorf("google returned no refresh token; revoke access at https://myaccount.google.com/permissions and retry")
	}

	if err := envfile.Upsert(cfg.SettingsFile, "GMAIL_REFRESH_TOKEN", tok.RefreshToken); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	cfg.RefreshToken = tok.RefreshToken
	fmt.Printf("Refresh token saved to %s\n", cfg.SettingsFile)
	return nil
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		err = fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}
	if err != nil {
		fmt.Printf("Could not open a browser automatically: %v\n", err)
	}
}
