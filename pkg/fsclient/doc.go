// Package fsclient provides the primary entry point for constructing
// FormSynergy API clients.
//
// An App is the application context: it holds the normalized configuration,
// the session store that carries the access point between requests, the local
// storage directory used by resource caches, and the application error log.
// Clients obtained from App.API share the session but each keeps its own
// staged request, so use one client per call chain.
//
// Quick start
//
//	ctx := context.Background()
//
//	app, err := fsclient.New(ctx, &formsynergy.Config{
//	  APIKey:    os.Getenv("FS_API_KEY"),
//	  SecretKey: os.Getenv("FS_SECRET_KEY"),
//	  Endpoint:  "api.formsynergy.com",
//	  Version:   "v1",
//	}, fsclient.WithStorage(os.TempDir(), "formsynergy"))
//	if err != nil { log.Fatal(err) }
//	defer app.Close()
//
//	api := app.API()
//	api.Get("leads").Where(ctx, map[string]any{"formid": "f-1"}).As("leads")
//	if err := api.Err(); err != nil { log.Fatal(err) }
//
//	leads, _ := api.Alias("leads")
//	_ = app.Resource("leads").Store(leads)
//
// Sessions
//
// By default session flags live in memory and are lost when the process
// exits. WithBoltSession keeps them in a local bbolt file, and WithNATSSession
// shares them through a NATS JetStream key/value bucket.
package fsclient
