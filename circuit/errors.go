//
// errors.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package circuit

import "errors"

// ErrCircuitMalformed is returned when a circuit file names an unknown
// gate type, or when the Evaluator finds no validly-tagged table entry
// during trial decryption. Always fatal.
var ErrCircuitMalformed = errors.New("circuit: malformed circuit or corrupted garbling")
