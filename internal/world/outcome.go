// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package world

// outcomeKind tags the result of matching one path against one pattern.
type outcomeKind uint8

const (
	outcomeMatched outcomeKind = iota
	outcomeNoMatch
	outcomeFailed
)

// outcome is the internal result of a single match attempt. A no-match
// carries no error value; one is only built when it reaches a caller.
type outcome struct {
	kind outcomeKind
	m    Map
	err  error
}

func matched(m Map) outcome {
	return outcome{kind: outcomeMatched, m: m}
}

func noMatch() outcome {
	return outcome{kind: outcomeNoMatch}
}

func failed(err error) outcome {
	return outcome{kind: outcomeFailed, err: err}
}

// result converts the outcome into the public (Map, error) form.
func (o outcome) result(path string) (Map, error) {
	switch o.kind {
	case outcomeMatched:
		return o.m, nil
	case outcomeFailed:
		return Map{}, o.err
	default:
		return Map{}, ErrNoMatchFound(path)
	}
}
