// Package books knows the names of the books of the Bible so readings can be
// logged with abbreviations like "1cor" or "ps".
package books

import "strings"

// Names lists the 66 books of the Protestant canon in order.
var Names = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Songs", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	"Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians", "1 Timothy",
	"2 Timothy", "Titus", "Philemon", "Hebrews", "James",
	"1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}

// Resolve maps user input to a canonical book name. An exact match ignoring
// case and spaces wins; otherwise the best fuzzy match is used when it beats
// every other book. Input that matches nothing well is returned trimmed and
// ok is false, so free-text book names still work.
func Resolve(input string) (name string, ok bool) {
	input = strings.TrimSpace(input)
	key := compact(input)
	if key == "" {
		return input, false
	}

	for _, n := range Names {
		if compact(n) == key {
			return n, true
		}
	}

	best, bestScore, tied := "", -1, false
	for _, n := range Names {
		matched, score := Match(key, compact(n))
		if !matched {
			continue
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = n, score, false
		case score == bestScore:
			tied = true
		}
	}
	if best == "" || tied {
		return input, false
	}
	return best, true
}

// Match checks whether all characters of query appear in target in order
// (case-insensitive) and scores how well. Consecutive runs and a match on
// the first character score higher.
func Match(query, target string) (bool, int) {
	if query == "" {
		return true, 0
	}

	q := strings.ToLower(query)
	t := strings.ToLower(target)

	qi := 0
	score := 0
	consecutive := 0

	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			consecutive = 0
			continue
		}
		qi++
		consecutive++
		score += consecutive
		if ti == 0 {
			score += 3
		}
	}

	return qi == len(q), score
}

func compact(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
