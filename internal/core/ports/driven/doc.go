// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SnapshotDecoder: Unpacks MHTML archives
//   - OrderExtractor: Scrapes orders from page HTML
//   - ComponentClassifier: Infers component attributes from titles
//   - FileStore: Image persistence under the storage root
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ImageFetcher: Downloads external item images. Without it, items keep their external URL.
//   - OrderStore: Import ledger. Without it, imports are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or format package
package driven
