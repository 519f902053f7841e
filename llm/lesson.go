package llm

import (
	"clementus360/edu-copilot/types"
	"fmt"
	"strings"
)

// BuildLessonPlanRequest renders a lesson-plan request as a one-shot
// transcript.
func BuildLessonPlanRequest(req types.LessonPlanRequest) GenerationRequest {
	var prompt strings.Builder
	prompt.WriteString("Crie um plano de aula com os seguintes dados:\n\n")
	fmt.Fprintf(&prompt, "Disciplina: %s\n", req.Subject)
	fmt.Fprintf(&prompt, "Série: %s\n", req.Grade)
	fmt.Fprintf(&prompt, "Tema: %s\n", req.Topic)
	if req.Duration != "" {
		fmt.Fprintf(&prompt, "Duração: %s\n", req.Duration)
	}
	if len(req.Competencies) > 0 {
		fmt.Fprintf(&prompt, "Competências BNCC: %s\n", strings.Join(req.Competencies, ", "))
	}

	return GenerationRequest{
		Contents:         BuildTranscript(nil, prompt.String(), LessonPlanInstruction),
		GenerationConfig: LessonPlanGeneration,
	}
}
