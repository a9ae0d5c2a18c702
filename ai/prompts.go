package ai

import (
	"fmt"
	"strings"
)

// Conversational modes.
const (
	ModeListening = "listening"
	ModeSolution  = "solution"
)

// IsValidMode reports whether mode names a supported conversational stance.
func IsValidMode(mode string) bool {
	return mode == ModeListening || mode == ModeSolution
}

const basePrompt = `You are a compassionate mental health companion. You are NOT a therapist or doctor. Never diagnose conditions or prescribe treatments.

IMPORTANT DISCLAIMER: This is for emotional support only, not professional mental health advice. If the user is in crisis, encourage them to contact emergency services or a crisis helpline.

Keep responses short (2-3 sentences max). Be warm, empathetic, and supportive.`

const listeningAppendix = `

MODE: LISTENING
- Only listen and validate feelings
- Do NOT give advice or solutions
- Reflect back what the user is feeling
- Use phrases like "I hear you", "That sounds difficult", "It's okay to feel this way"`

const solutionAppendix = `

MODE: SOLUTION
- After acknowledging feelings, suggest ONE small, actionable step
- Keep the suggestion simple and achievable
- Example: "Have you tried taking 3 deep breaths?" or "Maybe a 5-minute walk could help"`

// BuildSystemPrompt produces the system instruction for a conversation turn.
// It is a pure function of the mode and the prior day's summary; an empty
// summary omits the yesterday-context block. Mode validation happens upstream,
// an unknown mode simply gets no appendix.
func BuildSystemPrompt(mode string, yesterdaySummary string) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	switch mode {
	case ModeListening:
		b.WriteString(listeningAppendix)
	case ModeSolution:
		b.WriteString(solutionAppendix)
	}

	if yesterdaySummary != "" {
		b.WriteString("\n\nCONTEXT FROM YESTERDAY:\n")
		b.WriteString(yesterdaySummary)
	}

	return b.String()
}

// SummaryInput carries the day's check-in data and rendered transcript into
// the summary prompt. Mood 0 and an empty Energy render as "not recorded".
type SummaryInput struct {
	Mood       int
	Energy     string
	Sleep      bool
	Transcript string
}

// BuildSummaryPrompt produces the single free-text prompt asking the model
// for a 2-3 sentence third-person summary of the user's day.
func BuildSummaryPrompt(in SummaryInput) string {
	mood := "not recorded"
	if in.Mood != 0 {
		mood = fmt.Sprintf("%d", in.Mood)
	}
	energy := in.Energy
	if energy == "" {
		energy = "not recorded"
	}
	slept := "no"
	if in.Sleep {
		slept = "yes"
	}
	transcript := in.Transcript
	if transcript == "" {
		transcript = "No chats today"
	}

	return fmt.Sprintf(`Summarize this user's day in 2-3 sentences. Focus on their emotional state and any key concerns.

Check-in data:
- Mood: %s/5
- Energy: %s
- Slept well: %s

Chat history:
%s

Write a brief, third-person summary:`, mood, energy, slept, transcript)
}
