package api

import (
	"context"
	"fmt"
)

// Target is one build target registered for a platform.
type Target struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Platform is the payload from GET /platforms/{id}.
type Platform struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Targets []Target `json:"targets"`
}

// GetPlatform fetches a platform and its registered build targets.
func (c *Client) GetPlatform(ctx context.Context, id int) (*Platform, error) {
	var platform Platform
	if _, err := c.Do(ctx, "GET", fmt.Sprintf("/platforms/%d", id), nil, &platform); err != nil {
		return nil, fmt.Errorf("get platform %d: %w", id, err)
	}
	return &platform, nil
}

// TargetMap returns the platform's targets keyed by slug.
func (p *Platform) TargetMap() map[string]int {
	m := make(map[string]int, len(p.Targets))
	for _, t := range p.Targets {
		m[t.Slug] = t.ID
	}
	return m
}
