package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/fivetwenty-io/formsynergy-client/internal/http"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
)

// transmit sends the staged request, running the authentication handshake
// first when the session asks for it.
func (c *Client) transmit(ctx context.Context) {
	if c.err != nil {
		return
	}

	err := c.config.Validate()
	if err != nil {
		c.fail(err)

		return
	}

	if c.state.resource == "" {
		c.fail(formsynergy.ErrResourceRequired)

		return
	}

	if !c.authenticating {
		if _, pending := c.session.Get(ctx, constants.SessionKeyAuthenticate); pending {
			err = c.authenticate(ctx)
			if err != nil {
				c.fail(err)

				return
			}
		}
	}

	_, err = c.send(ctx, c.state, true)
	if err != nil {
		c.fail(err)
	}
}

// Authenticate runs the handshake now, regardless of the session flags.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.err != nil {
		return c.err
	}

	err := c.config.Validate()
	if err == nil {
		err = c.authenticate(ctx)
	}

	if err != nil {
		c.fail(err)

		return err
	}

	return nil
}

// authenticate parks the staged request, exchanges credentials for a new
// access point and puts the staged request back.
func (c *Client) authenticate(ctx context.Context) error {
	credentials, err := c.authenticator.Begin()
	if err != nil {
		c.logWarn("authentication limit reached", map[string]interface{}{
			"attempts": c.authenticator.Attempts() - 1,
			"limit":    c.authenticator.MaxAttempts(),
		})

		return err
	}

	c.authenticating = true
	defer func() {
		c.authenticating = false
	}()

	c.temp = &snapshot{
		resource: c.state.resource,
		method:   c.state.method,
		envelope: c.state.envelope,
	}

	c.logInfo("authenticating", map[string]interface{}{
		"attempt": c.authenticator.Attempts(),
		"limit":   c.authenticator.MaxAttempts(),
	})

	accessPoint, err := c.send(ctx, state{
		resource: constants.AuthenticateResource,
		method:   formsynergy.MethodPost,
		envelope: formsynergy.EnvelopeAuthenticate,
		request:  map[string]any{constants.AuthenticateResource: credentials},
	}, false)

	c.restore()

	if err != nil {
		return fmt.Errorf("authenticating: %w", err)
	}

	if accessPoint == "" {
		return formsynergy.ErrAuthenticationFailed
	}

	c.logInfo("authenticated", map[string]interface{}{
		"access_point": accessPoint,
	})

	return nil
}

// restore puts back the request parked by authenticate.
func (c *Client) restore() {
	if c.temp == nil {
		return
	}

	c.state.resource = c.temp.resource
	c.state.method = c.temp.method
	c.state.envelope = c.temp.envelope
	c.temp = nil
}

// uri builds /<version>/[<accessPoint>/]<resource>/.
func (c *Client) uri(ctx context.Context, resource string, viaAccessPoint bool) string {
	var b strings.Builder

	b.WriteString("/")
	b.WriteString(c.config.Version)
	b.WriteString("/")

	if viaAccessPoint {
		if accessPoint, ok := c.session.Get(ctx, constants.SessionKeyAccessPoint); ok && accessPoint != "" {
			b.WriteString(accessPoint)
			b.WriteString("/")
		}
	}

	b.WriteString(resource)
	b.WriteString("/")

	return b.String()
}

// send performs one exchange and handles its answer. It returns the access
// point carried by the answer, if any.
func (c *Client) send(ctx context.Context, st state, viaAccessPoint bool) (string, error) {
	payload, err := json.Marshal(st.request)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}

	req := &formsynergy.Request{
		Method:   st.method,
		Path:     c.uri(ctx, st.resource, viaAccessPoint),
		Envelope: st.envelope,
		Payload:  payload,
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, req)
	if err != nil {
		return "", err
	}

	headers := make(map[string]string, len(req.Headers))
	for key := range req.Headers {
		headers[key] = req.Headers.Get(key)
	}

	values := url.Values{constants.PayloadField: {string(req.Payload)}}

	var resp *http.Response

	switch req.Method {
	case formsynergy.MethodGet:
		resp, err = c.httpClient.Get(ctx, req.Path, values, headers)
	case formsynergy.MethodPost:
		resp, err = c.httpClient.Post(ctx, req.Path, values, headers)
	case formsynergy.MethodPut:
		resp, err = c.httpClient.Put(ctx, req.Path, values, headers)
	case formsynergy.MethodDelete:
		resp, err = c.httpClient.Delete(ctx, req.Path, values, headers)
	default:
		return "", fmt.Errorf("%w: %q", formsynergy.ErrUnsupportedMethod, req.Method)
	}

	intercepted := &formsynergy.InterceptedResponse{Error: err}
	if resp != nil {
		intercepted.StatusCode = resp.StatusCode
		intercepted.Headers = resp.Headers
		intercepted.Body = resp.Body
	}

	interceptErr := c.interceptors.ExecuteResponseInterceptors(ctx, req, intercepted)

	if resp != nil {
		accessPoint, handleErr := c.handle(ctx, resp)
		if err == nil {
			err = handleErr
		}

		if err == nil {
			err = interceptErr
		}

		return accessPoint, err
	}

	if err == nil {
		err = interceptErr
	}

	return "", err
}

// handle records the response envelope and applies the session signals it
// carries: a new access point, a lazy re-authentication request, an object id.
func (c *Client) handle(ctx context.Context, resp *http.Response) (string, error) {
	var data any

	if len(resp.Body) > 0 {
		err := json.Unmarshal(resp.Body, &data)
		if err != nil {
			c.logWarn("response is not JSON", map[string]interface{}{
				"status_code": resp.StatusCode,
				"error":       err.Error(),
			})

			data = nil
		}
	}

	c.response = &formsynergy.Response{
		StatusCode:      resp.StatusCode,
		ResponsePhrase:  resp.ReasonPhrase,
		ResponseHeaders: resp.Headers,
		ResponseBody:    resp.Body,
		Data:            data,
	}

	doc, _ := data.(map[string]any)
	if doc == nil {
		return "", nil
	}

	accessPoint, _ := doc[constants.SessionKeyAccessPoint].(string)

	if accessPoint != "" {
		err := c.session.Set(ctx, constants.SessionKeyAccessPoint, accessPoint)
		if err != nil {
			return "", err
		}

		err = c.session.Delete(ctx, constants.SessionKeyAuthenticate)
		if err != nil {
			return "", err
		}

		c.authenticator.Succeeded()
		c.restore()
	} else if truthy(doc[constants.SessionKeyAuthenticate]) {
		err := c.session.Set(ctx, constants.SessionKeyAuthenticate, constants.SessionKeyAccessPoint)
		if err != nil {
			return "", err
		}
	}

	if objID, ok := doc["objid"]; ok && objID != nil {
		if s, isString := objID.(string); isString {
			c.objID = s
		} else {
			c.objID = fmt.Sprint(objID)
		}
	}

	return accessPoint, nil
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0" && v != "false"
	case float64:
		return v != 0
	default:
		return true
	}
}
