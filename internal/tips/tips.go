// Package tips provides command hints shown under the dashboard.
package tips

import "time"

var all = []string{
	"`mates log gen 1` to record a chapter; book names can be abbreviated.",
	"`mates log ps 23 \"still waters\"` to keep a note with your reading.",
	"`mates log jn 3 --date yesterday` to catch up on a day you forgot.",
	"`mates unlog <id>` to remove a reading logged by mistake.",
	"`mates day --ids` to see reading IDs next to each entry.",
	"`mates cal --tui` to browse months with the arrow keys.",
	"`mates cal --month 2024-01` to look back at an earlier month.",
	"`mates streaks` to see who is on the longest run.",
	"`mates group create \"Family\"` to start a group and get an invite code.",
	"`mates group join <code>` to read along with friends.",
	"`mates group use solo` to switch the default view to just your readings.",
	"`mates hook create reading.posted` to run a script every time you log.",
	"`mates config set streak.lookback_days 120` to count streaks further back.",
	"`mates -v` to print debug logs while a command runs.",
}

// All returns all tips in the pool.
func All() []string {
	return all
}

// Daily returns a deterministic tip for the given day.
// The same tip is returned all day; it changes each day.
func Daily(t time.Time) string {
	return all[t.YearDay()%len(all)]
}
