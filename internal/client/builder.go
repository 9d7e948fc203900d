package client

import (
	"context"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
)

func (c *Client) intent(resource string, method formsynergy.Method, envelope formsynergy.Envelope) {
	if resource != "" {
		c.state.resource = resource
	}

	c.state.method = method
	c.state.envelope = envelope
}

// scopingKeys survive Reset.
var scopingKeys = []string{"reseller", "load"}

// set replaces the whole value under key in the staged request.
func (c *Client) set(key string, value any) {
	if c.state.request == nil {
		c.state.request = map[string]any{}
	}

	c.state.request[key] = value
}

// Get stages a GET of resource. Follow with Where to send it.
func (c *Client) Get(resource string) formsynergy.Client {
	c.intent(resource, formsynergy.MethodGet, formsynergy.EnvelopeGet)

	return c
}

// Create stages the creation of an object of resource. Follow with Attributes.
func (c *Client) Create(resource string) formsynergy.Client {
	c.intent(resource, formsynergy.MethodPost, formsynergy.EnvelopeCreate)

	return c
}

// Find stages a search in resource.
func (c *Client) Find(resource string) formsynergy.Client {
	c.intent(resource, formsynergy.MethodGet, formsynergy.EnvelopeFind)

	return c
}

// Download stages a download of resource.
func (c *Client) Download(resource string) formsynergy.Client {
	c.intent(resource, formsynergy.MethodGet, formsynergy.EnvelopeDownload)
	c.set("download", true)

	return c
}

// Replace stages a full replacement of the tracked object's attributes.
func (c *Client) Replace(attributes map[string]any) formsynergy.Client {
	c.intent("", formsynergy.MethodPut, formsynergy.EnvelopeUpdate)
	c.set("replace", map[string]any{"attributes": attributes})
	c.set("objid", c.objID)

	return c
}

// Renew stages a renewal of the tracked object.
func (c *Client) Renew() formsynergy.Client {
	c.intent("", formsynergy.MethodPut, formsynergy.EnvelopeRenew)
	c.set("objid", c.objID)

	return c
}

// With stages related resources to include in the answer.
func (c *Client) With(with any) formsynergy.Client {
	c.set("with", with)

	return c
}

// Reseller acts on behalf of a reseller account.
func (c *Client) Reseller(resellerID string) formsynergy.Client {
	c.set("reseller", map[string]any{"resellerid": resellerID})

	return c
}

// Load selects the profile requests apply to.
func (c *Client) Load(profileID string) formsynergy.Client {
	c.set("load", map[string]any{"profileid": profileID})

	return c
}

// Object sets the tracked object id used by Update, Replace, Renew, Delete,
// Verify and Scan.
func (c *Client) Object(objID string) formsynergy.Client {
	c.objID = objID

	return c
}

// Reset drops the staged request and the chain error. The reseller and
// profile scoping, aliases, the tracked object id and the last response are
// kept.
func (c *Client) Reset() formsynergy.Client {
	request := map[string]any{}

	for _, key := range scopingKeys {
		if value, ok := c.state.request[key]; ok {
			request[key] = value
		}
	}

	c.state = state{request: request}
	c.temp = nil
	c.err = nil

	return c
}

// Where sets the filter and sends the staged request.
func (c *Client) Where(ctx context.Context, where any) formsynergy.Client {
	c.set("where", where)
	c.transmit(ctx)

	return c
}

// Attributes sets the data of the object being created and sends it.
func (c *Client) Attributes(ctx context.Context, attributes map[string]any) formsynergy.Client {
	c.set("create", map[string]any{"attributes": attributes})
	c.transmit(ctx)

	return c
}

// Update sends a partial update of the tracked object.
func (c *Client) Update(ctx context.Context, attributes map[string]any) formsynergy.Client {
	c.intent("", formsynergy.MethodPut, formsynergy.EnvelopeUpdate)
	c.set("update", map[string]any{"attributes": attributes})
	c.set("objid", c.objID)
	c.transmit(ctx)

	return c
}

// Delete sends a deletion of the tracked object.
func (c *Client) Delete(ctx context.Context) formsynergy.Client {
	c.intent("", formsynergy.MethodDelete, formsynergy.EnvelopeDelete)
	c.set("objid", c.objID)
	c.transmit(ctx)

	return c
}

// Verify asks the service to verify the tracked object.
func (c *Client) Verify(ctx context.Context) formsynergy.Client {
	c.intent("", formsynergy.MethodPut, formsynergy.EnvelopeVerify)
	c.set("verify", true)
	c.set("objid", c.objID)
	c.transmit(ctx)

	return c
}

// Scan asks the service to scan the tracked object.
func (c *Client) Scan(ctx context.Context) formsynergy.Client {
	c.intent("", formsynergy.MethodPut, formsynergy.EnvelopeScan)
	c.set("scan", true)
	c.set("objid", c.objID)
	c.transmit(ctx)

	return c
}

// Export sends an export of resources for the profile staged with Load.
func (c *Client) Export(ctx context.Context, resources any) formsynergy.Client {
	c.intent(constants.ExportResource, formsynergy.MethodGet, formsynergy.EnvelopeWith)
	c.set("with", resources)

	where := map[string]any{}
	if profileID, ok := c.profileID(); ok {
		where["profileid"] = profileID
	}

	c.set("where", where)
	c.transmit(ctx)

	return c
}

// Send transmits the staged request as it is.
func (c *Client) Send(ctx context.Context) formsynergy.Client {
	c.transmit(ctx)

	return c
}

func (c *Client) profileID() (any, bool) {
	load, ok := c.state.request["load"].(map[string]any)
	if !ok {
		return nil, false
	}

	profileID, ok := load["profileid"]

	return profileID, ok
}
