// Package studioapi is the client for the Voice Engine Studio backend.
//
// The backend keeps per-user studio settings, the long-term memory
// store, the vision analysis endpoint, the environment simulator and
// the Google Calendar bridge. Create a client and use the service
// fields:
//
//	client := studioapi.NewClient(studioapi.WithBaseURL("http://localhost:8000"))
//	settings, err := client.Settings.Get(ctx, userID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Requests are attempted exactly once. Callers that relay capture
// results depend on that: a duplicate delivery would inject the same
// context into the conversation twice.
package studioapi
