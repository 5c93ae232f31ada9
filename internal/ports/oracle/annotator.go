package oracle

import "context"

// Request es lo que viaja al oráculo: el id de la entrada (para trazas)
// y el texto a comentar.
type Request struct {
	EntryID string
	Text    string
}

// Annotator genera un comentario breve de apoyo para un texto.
// Puede devolver texto vacío; decidir qué hacer con eso no es tarea del adapter.
type Annotator interface {
	Annotate(ctx context.Context, req Request) (string, error)
}

// Prompt compartido por los adapters.
const SystemPrompt = `You are a warm, supportive companion reading someone's private journal entry.
Reply with a short supportive comment of at most three sentences.
Acknowledge how they feel, offer one gentle, practical suggestion if it fits, and never diagnose or lecture.
Do not repeat the entry back and do not use lists or headings.`
