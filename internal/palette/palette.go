// Package palette assigns display colors to mates. Colors are a presentation
// concern; the streak engine only carries whatever color it is handed.
package palette

// Colors is the pastel palette. The first entry is reserved for the viewer.
var Colors = []string{
	"#cfeff1",
	"#fff2d2",
	"#ffc9ae",
	"#e6cbf3",
	"#e7fbd9",
	"#d7e4ff",
	"#fec9d3",
	"#ffe7ff",
	"#ffc7f4",
	"#f5e7d8",
}

// Self is the color used for the current user.
func Self() string {
	return Colors[0]
}

// ByJoinOrder maps user IDs, in the order they joined a group, to palette
// colors, wrapping around when the group outgrows the palette. A user listed
// twice keeps the first color.
func ByJoinOrder(userIDs []string) map[string]string {
	out := make(map[string]string, len(userIDs))
	i := 0
	for _, id := range userIDs {
		if _, ok := out[id]; ok {
			continue
		}
		out[id] = Colors[i%len(Colors)]
		i++
	}
	return out
}

// ForUser derives a stable color from the user ID when no join order is
// known. An empty ID gets the self color.
func ForUser(userID string) string {
	if userID == "" {
		return Self()
	}
	var hash int32
	for _, r := range utf16Units(userID) {
		hash = (hash << 5) - hash + int32(r)
	}
	idx := int(hash % int32(len(Colors)))
	if idx < 0 {
		idx = -idx
	}
	return Colors[idx]
}

// utf16Units returns the UTF-16 code units of s so the hash matches the one
// the mobile client computes.
func utf16Units(s string) []uint16 {
	var out []uint16
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			out = append(out, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			continue
		}
		out = append(out, uint16(r))
	}
	return out
}
