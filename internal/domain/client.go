package domain

import "fmt"

// A demand point to be served from some facility.
// Clients are read-only once loaded; scenarios derive scaled copies and
// never mutate the shared base entities.
type Client struct {
	ClientID string
	City     string
	Demand   float64
	Location Coordinates
}

func (c Client) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("client: empty client_id")
	}
	if c.Demand < 0 {
		return fmt.Errorf("client %s: negative demand %v", c.ClientID, c.Demand)
	}
	if err := c.Location.Validate(); err != nil {
		return fmt.Errorf("client %s: %w", c.ClientID, err)
	}
	return nil
}

// WithDemand returns a derived copy with demand replaced. Used by scenario
// evaluation to scale demand without touching shared inputs.
func (c Client) WithDemand(demand float64) Client {
	c.Demand = demand
	return c
}
