package humanoid

import (
	"math"
	"math/rand"
	"time"
)

// Delay draws a wait of (1 + floor(maxMs*U[0,1))) * mult microseconds.
// maxMs names the magnitude for historical reasons; the unit is really
// mult microseconds, so the defaults (18, 20000) give 20ms to 360ms.
// The result saturates at MaxDelay.
func Delay(rng *rand.Rand, maxMs float64, mult uint) time.Duration {
	const maxMicros = int64(MaxDelay / time.Microsecond)
	f := maxMs * rng.Float64()
	if f >= float64(maxMicros) {
		return MaxDelay
	}
	units := 1 + int64(f)
	if mult != 0 && units > maxMicros/int64(mult) {
		return MaxDelay
	}
	return time.Duration(units*int64(mult)) * time.Microsecond
}

// MaxDelay caps a single drawn wait.
const MaxDelay = time.Duration(math.MaxInt64 / int64(time.Microsecond) * int64(time.Microsecond))

// randInt draws from [1, max]. A max of zero always yields 1.
func randInt(rng *rand.Rand, max int) int {
	return 1 + int(float64(max)*rng.Float64())
}
