// Package service holds the registry that every desktop provider is published
// through.
//
// Tool ids are "<service>.<tool>". The registry routes a call to the provider that owns
// the service prefix, records the call and returns the provider's Result. Discover
// ranks services against free-text intent for launchers and search boxes.
package service
