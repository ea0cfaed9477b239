// Package client keeps a client-side token pair alive against the auth
// service: durable storage between process runs, proactive refresh ahead
// of access token expiry, and a single refresh-and-retry on 401.
//
// # Usage
//
//	storage := client.NewFileStorage(filepath.Join(home, ".zoptal", "tokens.json"))
//	mgr := client.New("https://api.zoptal.com", storage)
//
//	// After login, hand the pair to the manager.
//	_ = mgr.SetTokens(client.Tokens{
//		AccessToken:  pair.AccessToken,
//		RefreshToken: pair.RefreshToken,
//		ExpiresAt:    pair.ExpiresAt,
//	})
//
//	// Requests get the bearer token attached; a 401 triggers exactly one
//	// refresh and one retry.
//	resp, err := mgr.Do(ctx, req)
//
//	// Optionally refresh in the background ahead of expiry.
//	mgr.StartAutoRefresh()
//	defer mgr.Stop()
//
// # Refresh deduplication
//
// Concurrent refresh triggers (several 401s at once, the background
// ticker firing during a retry) share a single in-flight exchange; only
// one network call reaches the refresh endpoint and every caller observes
// its result. Since rotation invalidates the presented refresh token,
// this prevents concurrent triggers from tripping the server's reuse
// detection against each other.
//
// A rejected refresh clears local state: the stored pair is dead and the
// user must authenticate again.
package client
