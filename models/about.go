package models

// AboutResponse carries the explanatory text shown next to the chart.
type AboutResponse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var About = AboutResponse{
	Title: "About biorhythms",
	Text: "Three sinusoidal cycles counted from your birth date: " +
		"physical (23 days), emotional (28 days) and intellectual (33 days). " +
		"Values are shown as percentages from -100 to +100. " +
		"The model is for entertainment only and has no medical meaning.",
}
