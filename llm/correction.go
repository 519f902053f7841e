package llm

import (
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const defaultDocumentMIME = "application/pdf"

// CorrectionParseFailure prefixes the feedback of a result whose reply could
// not be parsed.
const CorrectionParseFailure = "Erro ao processar correção automática. Resposta da IA: "

type GradingInput struct {
	AnswerKey   []byte
	Submission  []byte
	MIMEType    string
	StudentName string
	Subject     string
	Grade       string
}

// BuildGradingRequest puts the answer key first and the student's test second;
// the instruction relies on that order.
func BuildGradingRequest(in GradingInput) GenerationRequest {
	mime := in.MIMEType
	if mime == "" {
		mime = defaultDocumentMIME
	}

	header := fmt.Sprintf(`Aluno: %s
Disciplina: %s
Série: %s

Por favor, analise o gabarito e a prova do aluno e forneça a correção no formato JSON especificado.`,
		in.StudentName, orUnspecified(in.Subject), orUnspecified(in.Grade))

	return GenerationRequest{
		Contents: []Content{
			textContent(roleUser, GradingInstruction),
			{
				Role: roleUser,
				Parts: []Part{
					{Text: header},
					{InlineData: &InlineData{MIMEType: mime, Data: in.AnswerKey}},
					{InlineData: &InlineData{MIMEType: mime, Data: in.Submission}},
				},
			},
		},
		GenerationConfig: GradingGeneration,
	}
}

// GradeSubmission asks the upstream to grade a submission. Completer errors are
// returned as is; an unparsable reply is not an error, see ParseCorrection.
func GradeSubmission(ctx context.Context, c Completer, in GradingInput) (types.CorrectionResult, error) {
	reply, err := c.Complete(ctx, BuildGradingRequest(in))
	if err != nil {
		return types.CorrectionResult{}, err
	}
	return ParseCorrection(reply.Text), nil
}

// ParseCorrection reads a CorrectionResult out of a model reply, tolerating a
// surrounding code fence. When nothing parses it returns a zero-score result
// whose feedback embeds the raw reply.
func ParseCorrection(text string) types.CorrectionResult {
	candidate := StripCodeFence(text)

	result, err := decodeCorrection(candidate)
	if err != nil {
		if obj, found := extractJSONObject(candidate); found {
			result, err = decodeCorrection(obj)
		}
	}
	if err != nil {
		config.Logger.WithError(err).Warn("Failed to parse correction reply")
		return types.EmptyCorrection(CorrectionParseFailure + text)
	}

	return result
}

var errNotObject = errors.New("correction reply is not a JSON object")

func decodeCorrection(text string) (types.CorrectionResult, error) {
	// null, arrays and scalars would decode into a zero result
	if !strings.HasPrefix(strings.TrimSpace(text), "{") {
		return types.CorrectionResult{}, errNotObject
	}

	var result types.CorrectionResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return types.CorrectionResult{}, err
	}

	if result.Corrections == nil {
		result.Corrections = []types.Correction{}
	}
	if result.Strengths == nil {
		result.Strengths = []string{}
	}
	if result.Improvements == nil {
		result.Improvements = []string{}
	}
	return result, nil
}

func orUnspecified(s string) string {
	if s == "" {
		return "Não especificada"
	}
	return s
}
