package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

type googleSpeechRecognizer struct {
	client *speech.Client
}

// NewGoogleSpeechRecognizer connects to Cloud Speech-to-Text. With an empty
// credentialsPath the client falls back to GOOGLE_APPLICATION_CREDENTIALS.
func NewGoogleSpeechRecognizer(ctx context.Context, credentialsPath string) (SpeechRecognizer, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Speech client: %w", err)
	}

	return &googleSpeechRecognizer{client: client}, nil
}

func (r *googleSpeechRecognizer) Name() string {
	return "google"
}

// RecognizeFile implements SpeechRecognizer.
func (r *googleSpeechRecognizer) RecognizeFile(ctx context.Context, path string, opts RecognitionOptions) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	return r.recognize(ctx, data, opts)
}

// RecognizeBytes implements SpeechRecognizer.
func (r *googleSpeechRecognizer) RecognizeBytes(ctx context.Context, data []byte, opts RecognitionOptions) ([]Segment, error) {
	return r.recognize(ctx, data, opts)
}

func (r *googleSpeechRecognizer) recognize(ctx context.Context, data []byte, opts RecognitionOptions) ([]Segment, error) {
	encoding, sampleRate := googleEncoding(opts.MIMEType)

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   encoding,
			SampleRateHertz:            sampleRate,
			LanguageCode:               opts.Language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	}

	startTime := time.Now()
	resp, err := r.client.Recognize(ctx, req)
	log.Printf("Google Speech-to-Text call completed in %v", time.Since(startTime))
	if err != nil {
		return nil, fmt.Errorf("Google Speech API recognition failed: %w", err)
	}

	var segments []Segment
	for _, result := range resp.GetResults() {
		alternatives := result.GetAlternatives()
		if len(alternatives) == 0 {
			continue
		}
		if text := strings.TrimSpace(alternatives[0].GetTranscript()); text != "" {
			segments = append(segments, Segment{Text: text})
		}
	}

	return segments, nil
}

// googleEncoding maps browser recording formats onto the v1 encodings.
// A zero sample rate lets the service read it from the container header.
func googleEncoding(mimeType string) (speechpb.RecognitionConfig_AudioEncoding, int32) {
	base := strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])

	switch base {
	case "audio/ogg":
		return speechpb.RecognitionConfig_OGG_OPUS, 48000
	case "audio/wav", "audio/x-wav", "audio/wave":
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, 0
	case "audio/flac", "audio/x-flac":
		return speechpb.RecognitionConfig_FLAC, 0
	case "audio/mpeg", "audio/mp3":
		return speechpb.RecognitionConfig_MP3, 0
	default:
		return speechpb.RecognitionConfig_WEBM_OPUS, 48000
	}
}
