package airkorea

// GradeUnknown is the decoded text for grades outside {1,2,3,4}.
const GradeUnknown = "unknown"

var gradeTexts = map[int]string{
	1: "good",
	2: "moderate",
	3: "poor",
	4: "very poor",
}

var gradeEmojis = map[int]string{
	1: "🟢",
	2: "🟡",
	3: "🟠",
	4: "🔴",
}

// GradeText decodes an air-quality grade (1=good .. 4=very poor).
func GradeText(grade int) string {
	if text, ok := gradeTexts[grade]; ok {
		return text
	}
	return GradeUnknown
}

// GradeEmoji returns the emoji for an air-quality grade, or an empty string
// for grades outside the known range.
func GradeEmoji(grade int) string {
	return gradeEmojis[grade]
}
