package tetris

import (
	"math"
	"time"
)

// Score awarded for clearing 0..4 rows with a single lock.
var lineScores = [...]int{0, 100, 300, 500, 600}

const (
	linesPerLevel   = 10
	hardDropPoints  = 2  // per cell fallen
	softDropPoints  = 1  // per gravity step while soft drop is held
	softDropDivisor = 20 // soft drop gravity runs this many times faster
	maxSpeedLevel   = 115 // last level whose base 0.8-(l-1)*0.007 is positive
)

// LineScore returns the points for clearing rows rows at once.
func LineScore(rows int) int {
	if rows < 0 || rows >= len(lineScores) {
		return 0
	}
	return lineScores[rows]
}

// LevelForLines returns the level reached after clearing lines rows in total.
func LevelForLines(lines int) int {
	return 1 + lines/linesPerLevel
}

// GravityDelay returns the time between gravity steps at the given level.
// Based on https://tetris.wiki/Marathon
//
//	Time = (0.8-((Level-1)*0.007))^(Level-1)
func GravityDelay(level int) time.Duration {
	level = max(1, min(level, maxSpeedLevel))
	seconds := math.Pow(0.8-float64(level-1)*0.007, float64(level-1))
	return time.Duration(seconds * float64(time.Second))
}
