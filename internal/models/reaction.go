package models

import "fmt"

// Reaction is one caller's personal like/dislike state for a single post.
// It lives only in the caller's reaction store; posts never record who
// reacted, only aggregate counters.
type Reaction string

const (
	// ReactionNone means the caller has no recorded reaction.
	ReactionNone    Reaction = ""
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// ParseReaction maps a wire value to a Reaction. "none" and the empty string
// both mean no reaction.
func ParseReaction(s string) (Reaction, error) {
	switch s {
	case "like":
		return ReactionLike, nil
	case "dislike":
		return ReactionDislike, nil
	case "none", "":
		return ReactionNone, nil
	default:
		return ReactionNone, fmt.Errorf("unknown reaction %q", s)
	}
}

// Valid reports whether r is one of the three recognized states.
func (r Reaction) Valid() bool {
	return r == ReactionNone || r == ReactionLike || r == ReactionDislike
}

// String returns the wire form, with ReactionNone spelled "none".
func (r Reaction) String() string {
	if r == ReactionNone {
		return "none"
	}
	return string(r)
}

// ReactionDeltas computes the like/dislike counter deltas for transitioning a
// caller's reaction from current to next. Each state contributes +1 to at most
// one counter; the delta is next's contribution minus current's. A like->dislike
// switch therefore yields (-1, +1) in a single transition, never double-counted.
func ReactionDeltas(current, next Reaction) (likeDelta, dislikeDelta int) {
	likeDelta = contribution(next, ReactionLike) - contribution(current, ReactionLike)
	dislikeDelta = contribution(next, ReactionDislike) - contribution(current, ReactionDislike)
	return likeDelta, dislikeDelta
}

func contribution(r, target Reaction) int {
	if r == target {
		return 1
	}
	return 0
}
