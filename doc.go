// Package oliveprice reconciles olive-oil price sources into one canonical
// daily series per grade.
//
// Prices come from two kinds of sources:
//   - Hand-written text logs, where a date line is followed by the prices of
//     the three grades (extra virgin, virgin and lampante), in several
//     historical layouts and numeric conventions.
//   - Daily JSON snapshots holding the prices published for one day.
//
// The package turns them into a chronologically complete, deduplicated
// History per Grade:
//   - Parsing: ParseDate, NormalizePrice and Classify are pure functions
//     returning documented sentinel errors.
//   - Extraction: an Extractor walks a text log and returns Observations and
//     recoverable Warnings; DecodeSnapshot reads a daily snapshot.
//   - Reconciliation: a Book merges observations (last write wins), is
//     forward-filled day by day, and receives today's snapshot.
//   - Persistence: EncodeBook and DecodeBook handle the canonical JSON file,
//     written atomically by WriteFileAtomically.
//
// Everything in this package is synchronous and holds no global state, a
// Reconciler run reads its sources up front and produces a Result that the
// caller writes once.
package oliveprice
