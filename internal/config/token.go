package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	keychainService = "tizhi"
	apiTokenAccount = "api_token"
)

// Keychain reads and writes secrets in the platform secret store: the
// macOS Keychain, or a 0600 JSON file under the data dir elsewhere.
type Keychain interface {
	Get(service, account string) (string, error)
	Set(service, account, value string) error
}

// NewKeychain returns the platform secret store.
func NewKeychain() Keychain {
	return platformKeychain{}
}

type platformKeychain struct{}

func (platformKeychain) Get(service, account string) (string, error) {
	out, err := keychainGet(service, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (platformKeychain) Set(service, account, value string) error {
	return keychainSet(service, account, value)
}

// GetAPIToken returns the bearer token guarding the HTTP API. TIZHI_API_TOKEN
// wins; otherwise the token stored in kc is used, and a new one is
// generated and stored on first use.
func GetAPIToken(cfg Config, kc Keychain) (string, error) {
	if cfg.Auth.APIToken != "" {
		return cfg.Auth.APIToken, nil
	}
	if tok, err := kc.Get(keychainService, apiTokenAccount); err == nil && tok != "" {
		return tok, nil
	}

	tok, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := kc.Set(keychainService, apiTokenAccount, tok); err != nil {
		return "", fmt.Errorf("storing API token: %w", err)
	}
	return tok, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating API token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
