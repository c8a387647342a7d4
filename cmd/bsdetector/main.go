// Package main provides the entry point for the bsdetector CLI.
//
// bsdetector rates how likely a web article is to be misleading, using the
// article content when it can be retrieved and the URL alone when it cannot.
// Users can vote on analyses; the votes adjust the displayed rating.
//
// Usage:
//
//	bsdetector analyze <article-url>...
//	bsdetector vote add <article-url> --rating 4 --accurate
//
// See --help for all available options.
package main

// main is the entry point for bsdetector.
func main() {
	Execute()
}
