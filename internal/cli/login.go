package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/insadmin/pkg/model"
)

const credentialsFileName = "credentials.json"

type credentials struct {
	Token     string         `json:"token"`
	API       string         `json:"api"`
	Username  string         `json:"username"`
	Role      model.UserRole `json:"role"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
}

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in against the remote API",
		Long:  "Authenticate with the remote API and store the bearer token for later commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			if username == "" {
				return fmt.Errorf("--username is required")
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}
			if password == "" {
				return fmt.Errorf("password cannot be empty")
			}

			res, err := client.Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			creds := credentials{
				Token:    res.Token,
				API:      client.BaseURL(),
				Username: res.User.Username,
				Role:     res.User.Role,
			}
			if !res.TokenExp.IsZero() {
				exp := res.TokenExp
				creds.ExpiresAt = &exp
			}
			credPath, err := saveCredentials(creds)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", creds.Username, creds.Role)
			fmt.Fprintf(cmd.OutOrStdout(), "Credentials saved to %s\n", credPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	return cmd
}

// credentialsPath returns the path to the credentials file (~/.insadmin/credentials.json).
func credentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".insadmin", credentialsFileName), nil
}

func saveCredentials(creds credentials) (string, error) {
	credPath, err := credentialsPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(credPath), 0700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(credPath, data, 0600); err != nil {
		return "", fmt.Errorf("write credentials: %w", err)
	}
	return credPath, nil
}

// LoadToken returns INSADMIN_TOKEN when set, otherwise the stored token.
// It returns an empty string when no unexpired token is available.
func LoadToken() string {
	if t := os.Getenv("INSADMIN_TOKEN"); t != "" {
		return t
	}
	p, err := credentialsPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return ""
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return ""
	}
	if creds.ExpiresAt != nil && time.Now().After(*creds.ExpiresAt) {
		return ""
	}
	return creds.Token
}

func requireToken() (string, error) {
	token := LoadToken()
	if token == "" {
		return "", fmt.Errorf("not logged in: run 'insadmin login --username NAME'")
	}
	return token, nil
}
