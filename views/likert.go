package views

var likertLabels = map[int]string{
	1: "Strongly Disagree",
	2: "Disagree",
	3: "Somewhat Disagree",
	4: "Neutral",
	5: "Somewhat Agree",
	6: "Agree",
	7: "Strongly Agree",
}

// red to green
var likertColors = map[int]string{
	1: "#b30000",
	2: "#e34a33",
	3: "#fc8d59",
	4: "#fdbb84",
	5: "#a1d99b",
	6: "#74c476",
	7: "#31a354",
}

// LikertLabel names a rating on the 1-7 scale.
func LikertLabel(v int) string {
	return likertLabels[v]
}

// LikertColor is the background color for a rating, black when out of
// range.
func LikertColor(v int) string {
	if c, ok := likertColors[v]; ok {
		return c
	}
	return "black"
}

// LikertScale lists the ratings in order for legends.
func LikertScale() []int {
	return []int{1, 2, 3, 4, 5, 6, 7}
}
