// Package rating maintains a track's rating state and its derived
// like/dislike counters. The rating is a single shared mutable field per
// track, not a per-user vote; the counters are cumulative and only ever
// change as part of a rating transition.
package rating

import "musicapp/model"

// Apply transitions a track from its current rating to next, adjusting the
// counters exactly once per transition where the rating actually changes:
// the counter of the previous rating is decremented (floored at zero), the
// counter of the next rating is incremented. None contributes to neither
// counter. The rating field itself is always reassigned, so a same-value
// transition is a no-op on the counters only.
//
// The caller is responsible for rejecting values outside the defined enum
// before calling Apply.
func Apply(t *model.Track, next model.RatingType) {
	if t.Rating != next {
		switch t.Rating {
		case model.RatingLike:
			if t.LikesCount > 0 {
				t.LikesCount--
			}
		case model.RatingDislike:
			if t.DislikesCount > 0 {
				t.DislikesCount--
			}
		}

		switch next {
		case model.RatingLike:
			t.LikesCount++
		case model.RatingDislike:
			t.DislikesCount++
		}
	}

	t.Rating = next
}

// Seed initializes the counters of a newly created track from its initial
// rating, equivalent to one transition from None.
func Seed(t *model.Track) {
	t.LikesCount = 0
	t.DislikesCount = 0
	if t.Rating == model.RatingLike {
		t.LikesCount = 1
	} else if t.Rating == model.RatingDislike {
		t.DislikesCount = 1
	}
}
