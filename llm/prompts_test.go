package llm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogInstruction(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name string
		tag  string
		want string
	}{
		{name: "teacher", tag: "teacher", want: teacherInstruction},
		{name: "student", tag: "student", want: studentInstruction},
		{name: "analytics", tag: "analytics", want: analyticsInstruction},
		{name: "case and spaces", tag: "  Teacher ", want: teacherInstruction},
		{name: "empty falls back to tutor", tag: "", want: studentInstruction},
		{name: "unknown falls back to tutor", tag: "principal", want: studentInstruction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Instruction(tt.tag))
		})
	}
}

func TestCatalogInstructionIsDeterministic(t *testing.T) {
	catalog := DefaultCatalog()
	assert.Equal(t, catalog.Instruction("analytics"), catalog.Instruction("analytics"))
	assert.NotEqual(t, catalog.Instruction("teacher"), catalog.Instruction("student"))
	assert.ElementsMatch(t, []string{"teacher", "student", "analytics"}, catalog.Tags())
}

func TestInstructionsKeepRequiredSections(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		sentences   []string
	}{
		{
			name:        "teacher",
			instruction: teacherInstruction,
			sentences: []string{
				"- Tendências em educação",
				"## FORMATO DE RESPOSTA",
				"## COMUNICAÇÃO",
				"- Use linguagem pedagógica apropriada",
				"- Mantenha foco na qualidade educacional",
				"**Você é um parceiro do professor na missão de educar. Sempre priorize o aprendizado dos alunos e o bem-estar docente.**",
			},
		},
		{
			name:        "student",
			instruction: studentInstruction,
			sentences: []string{
				"Siga rigorosamente as diretrizes abaixo:",
				"- Nunca coloque alternativas na mesma linha.",
				"- Use numeração sequencial (1, 2, 3...) nas questões.",
				"Agora tente responder as questões! Estou aqui para te ajudar se precisar de dicas ou esclarecimentos. Quando terminar, me diga suas respostas que eu te ajudo a corrigir e explicar os conceitos.",
				"## FORMATO DE RESPOSTA",
				"4. **Teste de conhecimento** – 3 a 5 perguntas",
				"## COMUNICAÇÃO",
				"vá direto ao conteúdo.",
				"**Você é um tutor interativo, não um gerador de respostas automáticas. Foque sempre no aprendizado.**",
			},
		},
		{
			name:        "analytics",
			instruction: analyticsInstruction,
			sentences: []string{
				"- Focar em métricas como notas, adoção de ferramentas, tempo economizado, etc.",
				"**ANÁLISE DE ARQUIVOS:**",
				"Sempre seja analítico, claro e baseado em dados.",
			},
		},
		{
			name:        "grading",
			instruction: GradingInstruction,
			sentences: []string{
				"- O PRIMEIRO arquivo é o GABARITO (respostas corretas)",
				"- Conte APENAS as questões que realmente existem na prova do aluno",
				"- Avalie a clareza e organização das respostas",
				"Responda APENAS o JSON abaixo, sem nenhum texto adicional ou formatação:",
				"**IMPORTANTE:** Responda APENAS o JSON, sem blocos de código, sem explicações adicionais.",
				"- A nota deve ser de 0 a 10",
				"- Conte apenas acertos totais (não parciais)",
				"- NÃO duplique ou crie questões que não existem na prova do aluno",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, sentence := range tt.sentences {
				assert.Contains(t, tt.instruction, sentence)
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		catalog, err := LoadCatalog("")
		require.NoError(t, err)
		assert.Equal(t, studentInstruction, catalog.Instruction("x"))
	})

	t.Run("overrides and new tags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompts.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
default: coordinator
prompts:
  teacher: |
    Você é um assistente de professores.
  coordinator: Você apoia coordenadores pedagógicos.
`), 0o600))

		catalog, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, "Você é um assistente de professores.", catalog.Instruction("teacher"))
		assert.Equal(t, studentInstruction, catalog.Instruction("student"))
		assert.Equal(t, "Você apoia coordenadores pedagógicos.", catalog.Instruction("unknown"))
	})

	t.Run("default without instruction", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default: nobody\n"), 0o600))

		_, err := LoadCatalog(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
