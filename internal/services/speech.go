package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// noSpeechMarker is what the transcription prompt asks the model to return
// when the audio contains no recognizable speech.
const noSpeechMarker = "NO_SPEECH"

type SpeechService interface {
	// Transcribe converts candidate audio to text. An empty string means no
	// speech was recognized (silence).
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	// Synthesize renders interviewer text as spoken audio (PCM bytes).
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type speechService struct {
	client    *genai.Client
	sttModel  string
	ttsModel  string
	voiceName string
}

func NewSpeechService(client *genai.Client) SpeechService {
	return &speechService{
		client:    client,
		sttModel:  "gemini-2.5-flash",
		ttsModel:  "gemini-2.5-flash-preview-tts",
		voiceName: "Kore",
	}
}

// Transcribe implements SpeechService.
func (s *speechService) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	instruction := fmt.Sprintf(
		"Transcribe the speech in this audio recording verbatim. "+
			"Return only the transcription text. If the recording contains no "+
			"recognizable speech, return exactly %s.", noSpeechMarker)

	parts := []*genai.Part{
		genai.NewPartFromText(instruction),
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := s.client.Models.GenerateContent(ctx, s.sttModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: transcription: %v", ErrCapability, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" || strings.Contains(text, noSpeechMarker) {
		return "", nil
	}
	return text, nil
}

// Synthesize implements SpeechService.
func (s *speechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: s.voiceName},
			},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.ttsModel, genai.Text(text), config)
	if err != nil {
		return nil, fmt.Errorf("%w: speech synthesis: %v", ErrCapability, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no audio candidates in response", ErrCapability)
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}

	return nil, fmt.Errorf("%w: no audio data in response", ErrCapability)
}
