// Package services implements the driving port interfaces.
//
// ImportService runs the snapshot pipeline, LedgerService records its
// results, and SettingsService reads and writes configuration. Services
// depend only on driven ports and never on concrete adapters.
package services
