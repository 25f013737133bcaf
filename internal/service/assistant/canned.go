package assistant

import (
	"fmt"
	"strings"

	"swasthyam/internal/model"
)

// emergencyKeywords trigger the safety answer on a contains-match, before
// any other handling.
var emergencyKeywords = []string{"bleeding", "severe pain", "faint", "emergency", "suicide"}

const emergencyAnswer = "IMPORTANT: If you are experiencing a medical emergency, severe pain, or bleeding, please stop using this chat and visit the nearest hospital immediately or call an ambulance (102/108)."

// cannedAnswers maps normalized questions to static replies. Reserved for
// small talk where a model call would be wasted.
var cannedAnswers = map[string]string{
	"who are you":   "I am Swasthyam's AI Health Assistant. I am here to provide guidance on maternal and child health based on your profile.",
	"what are you":  "I am Swasthyam's AI Health Assistant. I am here to provide guidance on maternal and child health based on your profile.",
	"what is this":  "I am Swasthyam's AI Health Assistant. I am here to provide guidance on maternal and child health based on your profile.",
	"thank you":     "You are very welcome! Take care of yourself. Is there anything else you need?",
	"thanks":        "You are very welcome! Take care of yourself. Is there anything else you need?",
	"thx":           "You are very welcome! Take care of yourself. Is there anything else you need?",
	"thanks a lot":  "You are very welcome! Take care of yourself. Is there anything else you need?",
	"how are you":   "I am just a computer program, but I am functioning perfectly and ready to help you! How are you?",
	"how are you doing": "I am just a computer program, but I am functioning perfectly and ready to help you! How are you?",
	"help":    "I can help you with pregnancy tips, nutrition advice, tracking your child's growth, or answering general health questions. What's on your mind?",
	"help me": "I can help you with pregnancy tips, nutrition advice, tracking your child's growth, or answering general health questions. What's on your mind?",
	"support": "I can help you with pregnancy tips, nutrition advice, tracking your child's growth, or answering general health questions. What's on your mind?",
}

var greetings = map[string]bool{
	"hi": true, "hello": true, "hey": true, "namaste": true, "greetings": true,
}

// normalizeQuestion lowercases, trims and strips trailing punctuation so
// "Hello!?" matches "hello".
func normalizeQuestion(q string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(q)), "?!. ")
}

// cannedAnswer returns a static reply for small talk and emergencies, or
// "" when the question needs the model.
func cannedAnswer(question, userName string) string {
	q := normalizeQuestion(question)

	if greetings[q] {
		if userName == "" {
			userName = "Friend"
		}
		return fmt.Sprintf("Namaste, %s! I am here to support your health journey. How are you feeling today?", userName)
	}
	if answer, ok := cannedAnswers[q]; ok {
		return answer
	}
	for _, keyword := range emergencyKeywords {
		if strings.Contains(q, keyword) {
			return emergencyAnswer
		}
	}
	return ""
}

const fallbackAnswer = "The AI assistant is temporarily unavailable. For pregnancy tips, nutrition advice or your child's schedule, please check the tracker pages, and always consult a doctor for medical decisions."

// buildSystemPrompt personalizes the model instructions from the profile.
func buildSystemPrompt(p *model.Profile) string {
	var b strings.Builder
	b.WriteString("You are a compassionate, medical-aware AI assistant for Swasthyam. ")
	b.WriteString("Your goal is to provide supportive, accurate, and brief health information. ")
	b.WriteString("ALWAYS include a disclaimer to consult a doctor for medical decisions.")

	if p == nil {
		return b.String()
	}
	switch p.PregnancyStatus {
	case model.PregnancyStatusPregnant:
		if p.PregnancyWeeks != nil {
			fmt.Fprintf(&b, "\nThe user is currently %d weeks pregnant.", *p.PregnancyWeeks)
		} else {
			b.WriteString("\nThe user is currently pregnant.")
		}
	case model.PregnancyStatusPostpartum:
		b.WriteString("\nThe user recently gave birth.")
	}
	if p.Age != nil {
		fmt.Fprintf(&b, "\nUser age: %d.", *p.Age)
	}
	if category := p.BMICategory(); category != "" {
		fmt.Fprintf(&b, "\nUser BMI category: %s.", category)
	}
	return b.String()
}
