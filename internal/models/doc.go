// Package models defines the core domain models for the travel planner.
//
// # Expense sharing
//
// A trip's shared fund is tracked per ExpenseGroup:
//   - ExpenseGroup: a named set of participants (display names, no accounts)
//   - Expense: one payment made by a participant on behalf of some subset
//
// Participants are identified by name strings. The participant list is fixed
// when the group is created; expenses may only reference those names.
//
// # Quotes
//
// A Quote is a saved price breakdown for a villa/vehicle/golf/guide request.
// The breakdown itself is produced by the calculator package and is always
// recomputed server-side before a quote is stored.
//
// # Design Principles
//
//  1. Amounts are whole numbers in the smallest currency unit (int64)
//  2. Relationships use ID strings instead of pointers
//  3. Timestamps are Unix seconds
package models
