// Package homespace monitors the published legal commitments of
// data-processing companies (privacy policies, cookie notices, terms of
// service) and tracks classified-ad listings from housing and secondhand
// marketplaces. It fetches pages, extracts structured fields via
// per-source selectors, normalizes them (whitespace, dates, geocoding),
// and emits versioned records suitable for diffing over time.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, nominatim/).
package homespace
