// Package models defines the core domain records for Report Writer.
//
// # Records
//
//   - User: a registered account; owns people and reports
//   - Person: a report subject with a canonical birthdate
//   - Report: one generated report plus its token/cost usage
//   - Settings / AdminSettings: per-user quota and global admin fields
//   - UsageSummary: derived per-user usage view, never stored
//
// # Design Principles
//
//  1. Records carry the exact field set of the at-rest JSON contract;
//     the jsonfile store marshals them directly.
//  2. Nullable contract fields (person2Id, customAge, pdfUrl, reportLimit)
//     are pointers so that null survives a round trip.
//  3. Relationships are id references, never embedded pointers.
//  4. UsageSummary is computed fresh on every query so it can never drift
//     from the report collection.
package models
