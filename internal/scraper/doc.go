// Package scraper extracts purchase orders from a saved order-history page.
//
// The markup of the source site changes between releases and hashes many
// of its class names, so every field is found through an ordered list of
// strategies (see Rules) and the first strategy that yields a usable value
// wins. A field no strategy can find gets a safe default; an item without
// a usable title or an order without items is skipped. The only failure
// reported to the caller is "no orders found".
//
// The scraper holds no per-document state. Everything a single extraction
// needs, including the image URL map, is passed down explicitly, so one
// Scraper may serve concurrent extractions.
package scraper
