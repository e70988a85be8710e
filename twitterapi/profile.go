package twitterapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	meURL            = "https://api.twitter.com/2/users/me"
	updateProfileURL = "https://api.twitter.com/1.1/account/update_profile.json"
)

// Me fetches the authenticated account's current display name.
func (c *Client) Me(ctx context.Context) (string, error) {
	body, err := c.Do(ctx, http.MethodGet, meURL, nil)
	if err != nil {
		return "", err
	}
	var res struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("parse profile response: %w", err)
	}
	if res.Data.Name == "" {
		return "", fmt.Errorf("profile response missing name")
	}
	return res.Data.Name, nil
}

// UpdateName sets the account's display name. The response body is ignored
// beyond success or failure.
func (c *Client) UpdateName(ctx context.Context, name string) error {
	_, err := c.Do(ctx, http.MethodPost, updateProfileURL, map[string]string{"name": name})
	return err
}
