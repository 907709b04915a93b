package conditions

var descriptions = map[Key]string{
	Clear:        "The sky stands unburdened, washed in sunlight like truth finally spoken. Enjoy your day!",
	Clouds:       "Grey veils drift across the sky, soft but heavy, like thoughts you haven't said aloud. Carry your umbrella of light.",
	Drizzle:      "A shy kind of rain, soft as a confession whispered at the edge of a dream. Feel the petrichor in the air.",
	Rain:         "Raindrops drum their honest rhythm, turning the world into a blurred watercolor. Feel the refreshing embrace of nature.",
	Snow:         "A quiet, white hush falls over everything, as if the world is holding its breath. Enjoy the aesthetics through your window.",
	Thunderstorm: "Lightning cracks the sky open, a reminder that even the heavens lose their temper. Hold your loved ones close.",
	Fog:          "The world folds into itself, wrapped in a pale uncertainty that hides more than it reveals. Keep your car wipers on.",
	Haze:         "A dull softness settles on the air, obscuring distance and sharpening longing. The next morning holds new clarity.",
	Sand:         "Grain by grain, the wind carries the desert's rage, scraping stories into the horizon. Protect your skin and eyes.",
	Default:      "The weather shifts, the world turns, and the sky writes its own quiet poem.",
}

// Description returns the prose for a condition key, falling back to the
// default entry for unknown keys.
func Description(key Key) string {
	if d, ok := descriptions[key]; ok {
		return d
	}
	return descriptions[Default]
}
