package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/kampongconnect/backend/internal/models"
	"go.uber.org/zap"
)

// Recognizer is the part of the speech client dictation needs
type Recognizer interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)
}

type cloudRecognizer struct {
	client *speech.Client
}

func (c cloudRecognizer) Recognize(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	return c.client.Recognize(ctx, req)
}

// DictationRequest carries base64 audio of an elder describing what they need
type DictationRequest struct {
	Audio      string          `json:"audio" validate:"required,base64"`
	Encoding   string          `json:"encoding" validate:"omitempty,oneof=LINEAR16 FLAC OGG_OPUS WEBM_OPUS"`
	SampleRate int             `json:"sampleRate" validate:"omitempty,gte=8000,lte=48000"`
	Language   models.Language `json:"language" validate:"omitempty,oneof=en zh ms ta"`
}

// DictationResult is the transcript of one recording. Offline is set when no
// recognizer is configured and the caller should fall back to typing.
type DictationResult struct {
	Transcript string          `json:"transcript"`
	Confidence float32         `json:"confidence"`
	Language   models.Language `json:"language"`
	Offline    bool            `json:"offline"`
	Duration   float64         `json:"durationSeconds"`
}

// speechLocales maps app languages to recognizer locales
var speechLocales = map[models.Language]string{
	models.LanguageEnglish:  "en-SG",
	models.LanguageMandarin: "cmn-Hans-CN",
	models.LanguageMalay:    "ms-MY",
	models.LanguageTamil:    "ta-SG",
}

// DictationService transcribes spoken request descriptions
type DictationService struct {
	recognizer Recognizer
	closer     func() error
	validator  *ValidationHelper
	logger     *zap.Logger
	timeout    time.Duration
}

// NewDictationService connects to Cloud Speech when enabled. Any failure to
// connect leaves the service offline rather than failing startup.
func NewDictationService(ctx context.Context, enabled bool, logger *zap.Logger) *DictationService {
	logger = logger.Named("dictation")
	if !enabled {
		logger.Info("speech recognition disabled, dictation runs offline")
		return NewDictationServiceWith(nil, logger)
	}

	client, err := speech.NewClient(ctx)
	if err != nil {
		logger.Warn("failed to initialize speech client, dictation runs offline", zap.Error(err))
		return NewDictationServiceWith(nil, logger)
	}

	s := NewDictationServiceWith(cloudRecognizer{client: client}, logger)
	s.closer = client.Close
	return s
}

// NewDictationServiceWith uses r for recognition; a nil r means offline
func NewDictationServiceWith(r Recognizer, logger *zap.Logger) *DictationService {
	return &DictationService{
		recognizer: r,
		validator:  NewValidationHelper(),
		logger:     logger,
		timeout:    30 * time.Second,
	}
}

// Transcribe turns a recording into text
func (s *DictationService) Transcribe(ctx context.Context, req DictationRequest) (DictationResult, error) {
	if err := s.validator.validate(&req); err != nil {
		return DictationResult{}, err
	}
	if req.Encoding == "" {
		req.Encoding = "LINEAR16"
	}
	if req.SampleRate == 0 {
		req.SampleRate = 16000
	}
	if req.Language == "" {
		req.Language = models.LanguageEnglish
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil || len(audio) == 0 {
		return DictationResult{}, validationErr("audio must be non-empty base64")
	}

	if s.recognizer == nil {
		return DictationResult{Language: req.Language, Offline: true}, nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.recognizer.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   parseEncoding(req.Encoding),
			SampleRateHertz:            int32(req.SampleRate),
			LanguageCode:               speechLocales[req.Language],
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		s.logger.Error("recognition failed", zap.String("language", string(req.Language)), zap.Error(err))
		return DictationResult{}, fmt.Errorf("recognition failed: %w", err)
	}

	transcript, confidence, err := joinAlternatives(resp)
	if err != nil {
		return DictationResult{}, err
	}

	return DictationResult{
		Transcript: transcript,
		Confidence: confidence,
		Language:   req.Language,
		Duration:   time.Since(start).Seconds(),
	}, nil
}

// Offline reports whether dictation has no recognizer
func (s *DictationService) Offline() bool {
	return s.recognizer == nil
}

func (s *DictationService) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

// joinAlternatives concatenates the top alternative of every result and
// averages their confidence.
func joinAlternatives(resp *speechpb.RecognizeResponse) (string, float32, error) {
	var transcript strings.Builder
	var total float32
	var count int

	for _, result := range resp.GetResults() {
		if len(result.Alternatives) == 0 {
			continue
		}
		alt := result.Alternatives[0]
		if count > 0 {
			transcript.WriteString(" ")
		}
		transcript.WriteString(strings.TrimSpace(alt.Transcript))
		total += alt.Confidence
		count++
	}

	if count == 0 {
		return "", 0, errors.New("no transcription results")
	}
	return transcript.String(), total / float32(count), nil
}

func parseEncoding(encoding string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToUpper(encoding) {
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_LINEAR16
	}
}
