package types

type Correction struct {
	QuestionNumber int    `json:"question"`
	StudentAnswer  string `json:"studentAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	Explanation    string `json:"explanation"`
}

type CorrectionResult struct {
	Score          float64      `json:"score"`
	CorrectAnswers int          `json:"correctAnswers"`
	TotalQuestions int          `json:"totalQuestions"`
	Feedback       string       `json:"feedback"`
	Corrections    []Correction `json:"corrections"`
	Strengths      []string     `json:"strengths"`
	Improvements   []string     `json:"improvements"`
}

// EmptyCorrection is the zero-score record returned when grading cannot
// produce a usable result. Slices are non-nil so they encode as [].
func EmptyCorrection(feedback string) CorrectionResult {
	return CorrectionResult{
		Feedback:     feedback,
		Corrections:  []Correction{},
		Strengths:    []string{},
		Improvements: []string{},
	}
}

type CorrectionRequest struct {
	AnswerKeyFile   string `json:"answerKeyFile"`
	StudentTestFile string `json:"studentTestFile"`
	StudentName     string `json:"studentName"`
	Subject         string `json:"subject,omitempty"`
	Grade           string `json:"grade,omitempty"`
	MIMEType        string `json:"mimeType,omitempty"`
}

// CorrectionErrorResponse is the error-shaped fallback of the grading route.
type CorrectionErrorResponse struct {
	ErrorMessage string `json:"error"`
	CorrectionResult
}
