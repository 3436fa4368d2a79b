// Package models defines the core domain models for the party planner.
//
// # Models
//
//   - Guest: one invitation record, a party of adults + children with an
//     RSVP status
//   - Expense: one shared-cost ledger entry attributed to one of two
//     fixed payers, with a reimbursement flag
//
// Candidate variants (GuestCandidate, ExpenseCandidate) carry the
// user-supplied fields of a record before validation and before the
// store has assigned an ID and timestamps. Validation of candidates
// lives in the validation package so the interactive form path and the
// CSV import path share one rule set.
//
// # Design Principles
//
//  1. Models are plain data: no methods with side effects, no storage
//     concerns beyond JSON tags (the API boundary is camelCase; the
//     sqlite layer maps underscore_case columns explicitly).
//  2. Enumerations (GuestStatus, Payer) are closed sets checked by
//     ValidGuestStatus / ValidPayer rather than free-form strings.
//  3. IDs are UUID strings assigned by the store, never by callers.
package models
