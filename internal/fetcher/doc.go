// Package fetcher retrieves article HTML through an ordered list of
// third-party retrieval backends.
//
// Articles are not requested directly. Each backend is a public proxy that
// fetches the page on our behalf, which gets past many anti-scraping
// defenses that block plain clients. Backends are unreliable, so the Fetcher
// tries them one after another and accepts the first body that is longer
// than MinContentLength characters. Backend failures are logged and skipped;
// they never abort the sequence.
//
// Fetch never returns an error. An empty or short result means the content
// was unreachable, and callers switch to URL-only analysis.
//
// Design decision: Backends are tried sequentially rather than raced. Racing
// would cut latency but multiply the load placed on free services we do not
// operate.
package fetcher
