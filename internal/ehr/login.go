package ehr

import (
	"context"
	"fmt"
)

// LoginResult carries the upstream session token and the display identity
// of the authenticated clinician.
type LoginResult struct {
	Token     string
	FirstName string
	LastName  string
	Roles     []string
}

// maxTokenLength rejects absurd upstream tokens before they end up in a
// cookie.
const maxTokenLength = 4096

// Login authenticates against the upstream EHR and returns its bearer
// token. Different EHR builds name the token field differently, so the
// first non-empty of token/accessToken/access_token wins.
func (c *Client) Login(ctx context.Context, baseURL, userName, password string) (*LoginResult, error) {
	base, err := c.resolveBase(baseURL)
	if err != nil {
		return nil, err
	}

	var dto loginResponseDTO
	rawURL := base + c.endpoints.Login
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"userName": userName, "password": password}).
		SetResult(&dto).
		Post(rawURL)
	if err != nil {
		return nil, fmt.Errorf("ehr login request failed: %w", err)
	}
	if resp.IsError() {
		return nil, &UpstreamError{Status: resp.StatusCode(), URL: rawURL}
	}

	token := dto.Token
	if token == "" {
		token = dto.AccessToken
	}
	if token == "" {
		token = dto.AccessSnake
	}
	if token == "" || len(token) > maxTokenLength {
		return nil, fmt.Errorf("ehr login: no usable token in response")
	}

	firstName := dto.FirstName
	if firstName == "" {
		firstName = dto.Name
	}
	return &LoginResult{
		Token:     token,
		FirstName: firstName,
		LastName:  dto.LastName,
		Roles:     dto.Roles,
	}, nil
}
