// ABOUTME: Hackathon CRUD, listing, applicants and status toggle endpoints
// ABOUTME: List endpoints tolerate non-array bodies by returning an empty slice

package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// GetHackathon fetches one hackathon
func (c *Client) GetHackathon(ctx context.Context, id string) (*Hackathon, error) {
	var h Hackathon
	if err := c.do(ctx, request{method: http.MethodGet, path: "/hackathons/" + escape(id)}, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateHackathon posts a new hackathon and returns the stored record
func (c *Client) CreateHackathon(ctx context.Context, in HackathonInput) (*Hackathon, error) {
	var h Hackathon
	if err := c.do(ctx, request{method: http.MethodPost, path: "/hackathons", body: in}, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// UpdateHackathon replaces hackathon id
func (c *Client) UpdateHackathon(ctx context.Context, id string, in HackathonInput) (*Hackathon, error) {
	var h Hackathon
	if err := c.do(ctx, request{method: http.MethodPut, path: "/hackathons/" + escape(id), body: in}, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// DeleteHackathon removes hackathon id
func (c *Client) DeleteHackathon(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/hackathons/" + escape(id)}, nil)
}

// ListMine lists the hackathons created by the current industry user
func (c *Client) ListMine(ctx context.Context) ([]Hackathon, error) {
	return listOf[Hackathon](ctx, c, "/hackathons/mine")
}

// ListAll lists every hackathon
func (c *Client) ListAll(ctx context.Context) ([]Hackathon, error) {
	return listOf[Hackathon](ctx, c, "/hackathons")
}

// Applicants lists applications to hackathon id
func (c *Client) Applicants(ctx context.Context, id string) ([]Applicant, error) {
	return listOf[Applicant](ctx, c, "/hackathons/"+escape(id)+"/applicants")
}

// ToggleStatus flips the enabled flag server-side and returns the updated record
func (c *Client) ToggleStatus(ctx context.Context, id string) (*Hackathon, error) {
	var h Hackathon
	if err := c.do(ctx, request{method: http.MethodPut, path: "/hackathons/" + escape(id) + "/toggle-status"}, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func listOf[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw, path), nil
}
