// Package state implements the application state owner.
//
// # Overview
//
// One Store holds the canonical lead and opportunity collections, the active
// detail selection, and the top-level phase machine:
//
//	Loading ──> Ready
//	   │          ▲
//	   ▼          │
//	 Error ───────┘ (retry re-enters Loading)
//
// Select, Update, Convert and ClearSelection are only reachable from Ready;
// the UI enforces this by never offering those actions elsewhere.
//
// # Ownership
//
// The Store exclusively owns both collections. Views receive Snapshot copies
// and hand replacement records back through Store methods; no view ever
// mutates shared data directly.
//
// # Contracts
//
//   - Update with an unknown id is a silent no-op.
//   - Convert appends the opportunity, forces the lead Qualified, and clears
//     the selection under a single mutex hold, so all three effects are
//     observable together.
//   - Opportunity ids are count+1 at creation; this never collides because
//     opportunities are never deleted.
package state
