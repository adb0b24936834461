// Package timefmt renders "last seen" timestamps as short relative phrases in
// Traditional Chinese, the language of the dashboard.
package timefmt

import (
	"fmt"
	"math"
	"time"
)

// Never is shown for peers that have not completed a handshake.
const Never = "從未"

// Relative formats the epoch seconds lastSeen relative to now.
//
//	30s -> "30 秒前", 90s -> "1 分 30 秒前", 2h -> "2 小時前", 2d -> "2 天前"
func Relative(lastSeen int64, now time.Time) string {
	if lastSeen == 0 {
		return Never
	}

	seconds := int64(math.Round(now.Sub(time.Unix(lastSeen, 0)).Seconds()))
	if seconds < 0 {
		seconds = 0
	}

	if seconds < 60 {
		return fmt.Sprintf("%d 秒前", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d 分 %d 秒前", minutes, seconds%60)
	}

	hours := int64(math.Round(float64(minutes) / 60))
	if hours < 24 {
		return fmt.Sprintf("%d 小時前", hours)
	}

	return fmt.Sprintf("%d 天前", int64(math.Round(float64(hours)/24)))
}
