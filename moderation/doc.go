// Package moderation defines the shared vocabulary and data model for the
// warden content moderation service: content items, user profiles, classifier
// verdicts, and final moderation records.
//
// All of the enumerated vocabularies (violation category, severity, decision)
// are closed sets of string constants, so they serialize cleanly as JSON and
// database values without a mapping layer.
package moderation
