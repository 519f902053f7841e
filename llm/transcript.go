package llm

import "clementus360/edu-copilot/types"

const (
	roleUser  = "user"
	roleModel = "model"
)

// BuildTranscript lays out the contents of a chat request: the system
// instruction, every prior turn in creation order, then the new user text.
// Nothing is dropped or reordered; length limits are the upstream's business.
func BuildTranscript(prior []types.Turn, userText, instruction string) []Content {
	contents := make([]Content, 0, len(prior)+2)

	// generateContent only knows user/model roles in contents
	contents = append(contents, textContent(roleUser, instruction))

	for _, turn := range prior {
		contents = append(contents, textContent(roleFor(turn.Author), turn.Text))
	}

	return append(contents, textContent(roleUser, userText))
}

func roleFor(author types.Author) string {
	if author == types.AuthorUser {
		return roleUser
	}
	return roleModel
}

func textContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}
