// Package classifier infers structured electrical attributes from free-text
// product titles. Classification is heuristic and total: every title yields
// a component, with fields omitted when no pattern applies.
package classifier
