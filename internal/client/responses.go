package client

import (
	"fmt"
	"maps"

	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
)

// Response returns the last response and clears it.
func (c *Client) Response() *formsynergy.Response {
	response := c.response
	c.response = nil

	return response
}

// LastResponse returns the last response without clearing it.
func (c *Client) LastResponse() *formsynergy.Response {
	return c.response
}

// Ready passes the last response to fn and returns it. The response is cleared.
func (c *Client) Ready(fn func(*formsynergy.Response)) *formsynergy.Response {
	response := c.Response()
	fn(response)

	return response
}

// Then passes the client to fn and returns the client.
func (c *Client) Then(fn func(formsynergy.Client)) formsynergy.Client {
	fn(c)

	return c
}

// As retains the payload of the last response under name.
func (c *Client) As(name string) formsynergy.Client {
	c.aliases[name] = c.response.Payload()
	c.lastAlias = name

	return c
}

// AsIndex retains one element of the last response payload under name.
func (c *Client) AsIndex(name, index string) formsynergy.Client {
	value, _ := formsynergy.Index(c.response.Payload(), index)

	c.aliases[name] = value
	c.lastAlias = name

	return c
}

// Alias returns the value retained under name; unknown names report false.
func (c *Client) Alias(name string) (any, bool) {
	value, ok := c.aliases[name]

	return value, ok
}

// AliasIndex returns element index of the value retained under name, or the
// whole value when it has no such element. Unknown names fail with
// ErrAliasNotFound.
func (c *Client) AliasIndex(name, index string) (any, error) {
	value, ok := c.aliases[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", formsynergy.ErrAliasNotFound, name)
	}

	if element, found := formsynergy.Index(value, index); found {
		return element, nil
	}

	return value, nil
}

// Aliases returns a copy of the alias table.
func (c *Client) Aliases() map[string]any {
	return maps.Clone(c.aliases)
}

// LastAlias returns the most recently assigned alias name.
func (c *Client) LastAlias() string {
	return c.lastAlias
}
