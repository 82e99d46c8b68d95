package models

// Rank is one rung of the animal ladder. Ranks are loaded from the "ranks"
// collection once per session and never mutated afterwards.
type Rank struct {
	Name      string `bson:"name" json:"name"`
	ImageName string `bson:"imageName" json:"imageName"`
	Color     string `bson:"color" json:"color"` // hex code, e.g. "#FF5733"
	MinSteps  int    `bson:"minSteps" json:"minSteps"`
	MaxSteps  int    `bson:"maxSteps" json:"maxSteps"` // RankMaxUnbounded for the top rank
}

// RankMaxUnbounded marks the top rank's open upper interval.
const RankMaxUnbounded = int(^uint(0) >> 1)

// Contains reports whether a weekly step total falls inside this rank's interval.
func (r Rank) Contains(steps int) bool {
	return r.MinSteps <= steps && steps <= r.MaxSteps
}
