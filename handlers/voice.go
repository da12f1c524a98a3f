package handlers

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"caregrid/config"
	"caregrid/middleware"
	"caregrid/models"
	ai "caregrid/services/intelligence"
	"caregrid/services/schedule"
	"caregrid/utils"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	MaxDurationSeconds = 60              // 1 minute maximum
	MaxAudioFileSize   = 5 * 1024 * 1024 // 5MB (conservative buffer)
	AllowedExtension   = ".wav"
)

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}

	var header waveHeader
	buf := bytes.NewReader(data)
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a WAV file")
	}
	return &header, nil
}

func convertAudio(inputPath, outputPath string) error {
	_, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("ffmpeg not found in system PATH: %v", err)
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}
	return nil
}

// VoiceHandler runs the record -> transcribe -> extract -> validate -> save
// pipeline for schedules described by voice note.
type VoiceHandler struct {
	Service    schedule.ScheduleService
	Extractor  ai.ScheduleExtractor
	WeekPolicy schedule.VoiceWeekPolicy
}

func NewVoiceHandler(svc schedule.ScheduleService, extractor ai.ScheduleExtractor) *VoiceHandler {
	return &VoiceHandler{
		Service:   svc,
		Extractor: extractor,
		// Matches the shipped client behavior; see VoiceWeekPolicy.
		WeekPolicy: schedule.VoiceWeekForceNext,
	}
}

// UploadVoiceHandler accepts a WAV recording, transcribes it with Google
// Speech-to-Text and saves the validated schedule. An unusable transcript or
// extraction falls back to the default schedule rather than failing; the
// response carries the transcript and a "fallback" marker so the client can
// prompt for review.
func (h *VoiceHandler) UploadVoiceHandler(c *gin.Context) {
	userID := middleware.UserID(c)
	logger := utils.GetLogger()
	language := c.DefaultPostForm("language", "en-US")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Audio file is required", err.Error())
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != AllowedExtension {
		utils.JSONError(c, http.StatusBadRequest, "Invalid file type",
			fmt.Sprintf("expected %s, got %s", AllowedExtension, ext))
		return
	}

	tempInput, err := os.CreateTemp("", "audio-*.wav")
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create temp file", err.Error())
		return
	}
	defer os.Remove(tempInput.Name())
	defer tempInput.Close()

	if _, err := io.Copy(tempInput, io.LimitReader(file, MaxAudioFileSize)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save audio file", err.Error())
		return
	}

	tempOutput, err := os.CreateTemp("", "converted-*.wav")
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create output temp file", err.Error())
		return
	}
	defer os.Remove(tempOutput.Name())
	defer tempOutput.Close()

	if err := convertAudio(tempInput.Name(), tempOutput.Name()); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Audio conversion failed", err.Error())
		return
	}

	audioData, err := os.ReadFile(tempOutput.Name())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read converted audio", err.Error())
		return
	}
	if _, err := parseWaveHeader(audioData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid audio data", err.Error())
		return
	}

	transcript, err := h.transcribe(c.Request.Context(), audioData, language)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Speech recognition failed", err.Error())
		return
	}

	raw := ""
	if transcript != "" {
		raw, err = h.Extractor.ExtractFromText(c.Request.Context(), transcript)
		if err != nil {
			logger.Warn("voice extraction failed, using defaults", zap.Error(err))
			raw = ""
		}
	}

	draft, fallbackErr := schedule.ValidateVoiceExtraction(raw, transcript, schedule.VoiceOptions{
		WeekPolicy: h.WeekPolicy,
	})
	record, err := h.Service.SaveDraft(userID, draft)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not save schedule", err.Error())
		return
	}

	resp := models.VoiceScheduleResponse{
		Transcript: transcript,
		Schedule:   record,
	}
	if fallbackErr != nil {
		resp.Fallback = fallbackErr.Error()
	}
	c.JSON(http.StatusCreated, resp)
}

// transcribe runs Google STT over mono 16kHz LINEAR16 audio.
func (h *VoiceHandler) transcribe(ctx context.Context, audioData []byte, language string) (string, error) {
	var opts []option.ClientOption
	if f := config.AppConfig.SpeechCredentialsFile; f != "" {
		opts = append(opts, option.WithCredentialsFile(f))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to initialize speech client: %w", err)
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   16000,
			LanguageCode:      language,
			AudioChannelCount: 1, // Mono
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audioData,
			},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}
