// Package formsynergy provides types, interfaces, and helpers for working with
// the FormSynergy REST API.
//
// # Overview
//
// The formsynergy package defines the public surface of the SDK: the fluent
// Client builder interface, the Config used to construct it, the Response
// envelope, the SessionStore and ResourceCache contracts, and the error kinds
// returned by the client. A concrete implementation is provided by the
// fsclient package, which wires configuration, transport, session storage and
// the local resource cache. Most consumers should import fsclient to build an
// application context and then obtain clients from it.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
//	  "github.com/fivetwenty-io/formsynergy-client/pkg/fsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  app, err := fsclient.New(ctx, &formsynergy.Config{
//	    APIKey:    "key",
//	    SecretKey: "secret",
//	    Endpoint:  "api.formsynergy.com",
//	    Version:   "v1",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  api := app.API().Create("leads").Attributes(ctx, map[string]any{"fname": "Joe"})
//	  if err := api.Err(); err != nil { log.Fatal(err) }
//	  _ = api.Response()
//	}
//
// # Request building
//
// Builder methods fall into two groups. Deferred methods (Get, Create, Find,
// Download, Replace, Renew, With, Reseller, Load, Object) only stage request
// state. Triggering methods (Where, Attributes, Update, Delete, Verify, Scan,
// Export, Send) stage their part and transmit immediately. The staged request
// is JSON encoded into a single "payload" field, sent in the query string for
// GET and in a form body otherwise.
//
// # Authentication
//
// The service signals re-authentication by answering with Authenticate: true.
// The flag is kept in the SessionStore and the next triggering call performs
// the handshake first: it sends the API key together with
// md5(sha3-512(timestamp + secret)) and receives a rotating access point that
// is inserted into subsequent request URIs. Handshakes are bounded by
// Config.MaxAuthCount.
//
// # Errors
//
// Errors are sticky on a client chain: once a call fails, later triggering
// calls are skipped and Err reports the first failure. Helpers such as
// IsConfigurationMissing, IsAuthorizationLimitExceeded and IsRemoteRequestFailed
// make it easy to branch on error kinds.
package formsynergy
