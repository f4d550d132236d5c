package views

import "github.com/a-h/templ"

// ConsentData fills the consent form.
type ConsentData struct {
	CSRFToken string
	Name      string
	Message   *Message
}

// Consent is the first survey screen.
func Consent(data ConsentData) templ.Component {
	return htmlTemplate("consent", data)
}

// QuestionItem is one slider.
type QuestionItem struct {
	QID     string
	Text    string
	Value   int
	Missing bool
}

// QuestionnaireData fills a questionnaire form.
type QuestionnaireData struct {
	CSRFToken string
	Title     string
	Prompt    string
	Action    string
	Submit    string
	Items     []QuestionItem
	// Banner reports the outcome of the previous stage.
	Banner  *Message
	Message *Message
}

// Scale is used by the legend.
func (QuestionnaireData) Scale() []int { return LikertScale() }

// Questionnaire renders the sliders for one question set.
func Questionnaire(data QuestionnaireData) templ.Component {
	return htmlTemplate("questionnaire", data)
}

// SummaryRow is one column of the score table.
type SummaryRow struct {
	Label     string
	Value     string
	Highlight bool
}

// StimulusItem is one ranked follow-up answer.
type StimulusItem struct {
	QID    string
	Text   string
	Rating int
}

// SummaryData fills the summary screen. The chart fields hold echarts
// option JSON.
type SummaryData struct {
	Participant  string
	Rows         []SummaryRow
	Kind         string
	Stimuli      []StimulusItem
	StimuliChart string
	PointLabel   string
	PointChart   string
	Caption      string
	ExportName   string
	Message      *Message
}

// Summary renders scores, charts and the export link.
func Summary(data SummaryData) templ.Component {
	return htmlTemplate("summary", data)
}
