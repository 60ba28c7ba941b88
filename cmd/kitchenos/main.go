// Package main provides the entry point for the KitchenOS CLI.
//
// KitchenOS extracts structured recipes from YouTube cooking videos.
// It scrapes linked recipe pages, parses video descriptions, and falls
// back to local LLM extraction from the transcript, then normalizes
// every ingredient into a canonical form.
//
// Usage:
//
//	kitchenos extract <youtube-url>
//	kitchenos batch --list <file>
//	kitchenos shoppinglist
//
// See --help for all available options.
package main

// main is the entry point for KitchenOS.
func main() {
	Execute()
}
