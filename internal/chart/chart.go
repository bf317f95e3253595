package chart

import "log"

// Descriptor is a Chart.js-shaped visualization description.
type Descriptor struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

// Data holds category labels and their numeric series.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one numeric series with its display colors.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     []string  `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
}

// Options carries Chart.js display options.
type Options struct {
	Responsive bool    `json:"responsive"`
	Plugins    Plugins `json:"plugins"`
	Scales     *Scales `json:"scales,omitempty"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
	Title  Title  `json:"title"`
}

type Legend struct {
	Position string `json:"position"`
}

type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type Scales struct {
	Y Axis `json:"y"`
}

type Axis struct {
	BeginAtZero bool  `json:"beginAtZero"`
	Title       Title `json:"title"`
}

// Generate returns the fixed quarterly-revenue bar chart descriptor. The kind
// argument is accepted for forward compatibility but does not alter the
// output yet; there is no live data source behind this tool.
func Generate(kind string) Descriptor {
	if kind == "" {
		kind = "bar"
	}
	log.Printf("[CHART] generating chart: %s", kind)
	return Descriptor{
		Type: "bar",
		Data: Data{
			Labels: []string{"Q1", "Q2", "Q3", "Q4"},
			Datasets: []Dataset{{
				Label: "Revenue (in millions)",
				Data:  []float64{2.5, 3.2, 2.8, 4.1},
				BackgroundColor: []string{
					"rgba(75, 192, 192, 0.6)",
					"rgba(54, 162, 235, 0.6)",
					"rgba(255, 206, 86, 0.6)",
					"rgba(153, 102, 255, 0.6)",
				},
				BorderColor: []string{
					"rgba(75, 192, 192, 1)",
					"rgba(54, 162, 235, 1)",
					"rgba(255, 206, 86, 1)",
					"rgba(153, 102, 255, 1)",
				},
				BorderWidth: 1,
			}},
		},
		Options: Options{
			Responsive: true,
			Plugins: Plugins{
				Legend: Legend{Position: "top"},
				Title:  Title{Display: true, Text: "Quarterly Revenue Report 2024"},
			},
			Scales: &Scales{
				Y: Axis{
					BeginAtZero: true,
					Title:       Title{Display: true, Text: "Revenue ($M)"},
				},
			},
		},
	}
}
