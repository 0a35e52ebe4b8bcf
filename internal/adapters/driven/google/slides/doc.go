// Package slides adapts the Google Slides API to the presentation ports.
//
// An Opener builds an authenticated slides.Service per session from a
// service account or authorised user credentials file:
//
//	opener, err := slides.NewOpener(ctx, "~/.deckforge/credentials.json")
//	session, err := opener.Open(ctx)
//	defer session.Close()
//
// Every API call passes through a token bucket limiter. A 429 response
// pauses the limiter for the duration the server asked for.
//
// # OAuth2 Scopes
//
//   - https://www.googleapis.com/auth/presentations
//   - https://www.googleapis.com/auth/drive.readonly
package slides
