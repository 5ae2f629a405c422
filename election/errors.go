//
// errors.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package election

import "errors"

// ErrZKPInvalid is returned when a vote's disjunctive proof or a
// partial decryption's DLEQ proof fails verification. Aggregate
// operations treat it as "drop this row", not a hard failure
// (spec.md §7).
var ErrZKPInvalid = errors.New("election: zero-knowledge proof invalid")

// ErrTallyRecovery is returned when CombineResults cannot find a
// discrete log matching the combined partial decryptions within its
// search bound. This is a hard error: the decryptions were not
// mutually consistent.
var ErrTallyRecovery = errors.New("election: tally recovery failed")
