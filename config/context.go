package config

// Surface describes one demo screen: which prompt it uses, where its session
// collection lives and how a fresh session looks.
type Surface struct {
	Name             string
	PromptContext    string
	StorageKey       string
	PlaceholderTitle string
	Welcome          string
}

// Prompt context tags
const (
	ContextTeacher   = "teacher"
	ContextStudent   = "student"
	ContextAnalytics = "analytics"
)

var Surfaces = map[string]Surface{
	"teacher": {
		Name:             "teacher",
		PromptContext:    ContextTeacher,
		StorageKey:       "teacher-chats",
		PlaceholderTitle: "Nova Conversa",
		Welcome:          "Olá, professor! Sou seu copiloto pedagógico. Posso ajudar com planos de aula alinhados à BNCC, critérios de correção e estratégias de sala de aula. Por onde começamos?",
	},
	"tutor": {
		Name:             "tutor",
		PromptContext:    ContextStudent,
		StorageKey:       "tutor-chats",
		PlaceholderTitle: "Novo Estudo",
		Welcome:          "Olá! Eu sou o Tutor AI, seu assistente de estudos 24/7. Como posso te ajudar hoje? Você pode pedir explicações, simulados do ENEM ou ajuda com pesquisas.",
	},
	"analytics": {
		Name:             "analytics",
		PromptContext:    ContextAnalytics,
		StorageKey:       "educational-chats",
		PlaceholderTitle: "Nova Análise",
		Welcome:          "Olá! Sou seu assistente de inteligência educacional. Você pode enviar arquivos PDF ou CSV para análise, ou fazer perguntas sobre os dados. Sobre qual aspecto dos dados educacionais gostaria de conversar hoje?",
	},
}

// LookupSurface returns the surface registered under name.
func LookupSurface(name string) (Surface, bool) {
	s, ok := Surfaces[name]
	return s, ok
}

// Attachment limits
const (
	MaxAttachmentBytes = 10 * 1024 * 1024
	PreviewRows        = 5
)
