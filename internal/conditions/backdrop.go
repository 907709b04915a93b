package conditions

import (
	"time"

	"github.com/The-ShambhaviPandey/Mausam/internal/models"
)

// TimeOfDay values.
const (
	Day   = "day"
	Night = "night"
)

type mediaEntry struct {
	kind  string
	day   string
	night string
}

var backdrops = map[Key]mediaEntry{
	Clear:        {"video", "https://assets.mixkit.co/videos/51110/51110-720.mp4", "https://assets.mixkit.co/videos/10293/10293-720.mp4"},
	Clouds:       {"video", "https://assets.mixkit.co/videos/51102/51102-720.mp4", "https://assets.mixkit.co/videos/47299/47299-720.mp4"},
	Drizzle:      {"video", "https://assets.mixkit.co/videos/18309/18309-720.mp4", "https://assets.mixkit.co/videos/28097/28097-720.mp4"},
	Rain:         {"video", "https://assets.mixkit.co/videos/6890/6890-720.mp4", "https://assets.mixkit.co/videos/27704/27704-720.mp4"},
	Snow:         {"video", "https://assets.mixkit.co/videos/35040/35040-720.mp4", "https://assets.mixkit.co/videos/26956/26956-720.mp4"},
	Thunderstorm: {"video", "https://assets.mixkit.co/videos/9681/9681-720.mp4", "https://assets.mixkit.co/videos/47948/47948-720.mp4"},
	Fog:          {"video", "https://assets.mixkit.co/videos/47655/47655-720.mp4", "https://assets.mixkit.co/videos/46194/46194-720.mp4"},
	Haze:         {"video", "https://assets.mixkit.co/videos/28342/28342-720.mp4", "https://assets.mixkit.co/videos/4433/4433-720.mp4"},
	Sand:         {"video", "https://assets.mixkit.co/videos/4149/4149-720.mp4", "https://assets.mixkit.co/videos/46389/46389-720.mp4"},
	Default:      {"video", "https://assets.mixkit.co/videos/1780/1780-720.mp4", "https://assets.mixkit.co/videos/1610/1610-720.mp4"},
}

// Media resolves a backdrop for a condition key and time of day. Unknown
// keys fall back to the default entry and anything that isn't "night" gets
// the day variant, so the result is always playable.
func Media(key Key, timeOfDay string) models.Media {
	entry, ok := backdrops[key]
	if !ok {
		entry = backdrops[Default]
	}
	url := entry.day
	if timeOfDay == Night {
		url = entry.night
	}
	return models.Media{Kind: entry.kind, URL: url}
}

// TimeOfDay reports whether now falls between the provider's sunrise and
// sunset, inclusive. Sunrise and sunset arrive already shifted into the
// city's local epoch frame, so now is shifted by the same offset rather
// than using the server's wall clock zone. That keeps the answer correct
// for the viewed city regardless of where the service runs.
func TimeOfDay(now time.Time, sunrise, sunset int64, tzOffsetSeconds int) string {
	local := now.UTC().Unix() + int64(tzOffsetSeconds)
	if local >= sunrise && local <= sunset {
		return Day
	}
	return Night
}
