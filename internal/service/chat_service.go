package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	errs "github.com/krispatl/mootie/internal/pkg/errors"
	"github.com/krispatl/mootie/internal/provider"
)

// SpeechAPI is the audio slice of the provider client.
type SpeechAPI interface {
	Transcribe(ctx context.Context, model, filename string, r io.Reader) (string, error)
	Speech(ctx context.Context, model, voice, format, text string) ([]byte, error)
}

type ChatOptions struct {
	TranscribeModel string
	TTSModel        string
	TTSVoice        string
	MaxInputChars   int
}

// ChatService composes persona prompts for the moot-court modes and
// relays turns to the chat provider chain. Synthesized audio is cached
// because the bench repeats itself a lot.
type ChatService struct {
	chatter  provider.IChatter
	speech   SpeechAPI
	opts     ChatOptions
	ttsCache *expirable.LRU[string, []byte]
}

func NewChatService(chatter provider.IChatter, speech SpeechAPI, opts ChatOptions) *ChatService {
	if opts.TTSVoice == "" {
		opts.TTSVoice = "alloy"
	}
	return &ChatService{
		chatter:  chatter,
		speech:   speech,
		opts:     opts,
		ttsCache: expirable.NewLRU[string, []byte](256, nil, 2*time.Hour),
	}
}

var modePrompts = map[string]string{
	"coach": `You are a moot court coach. Give constructive, specific feedback on the advocate's argument below.
Point out what works, what does not, and how to sharpen delivery. Ground your answer in the uploaded case documents when relevant.`,
	"judge": `You are a presiding appellate judge. Respond to the advocate's argument below the way an active bench would:
probe weaknesses, ask one pointed follow-up question, and note any misstatements of the record or authority.`,
	"opposition": `You are opposing counsel. Rebut the argument below directly and forcefully, citing the strongest
contrary authority available in the uploaded case documents.`,
}

type ChatResult struct {
	Text       string
	References []string
	Audio      []byte
	Mime       string
}

// SendMessage runs one conversational turn. mode defaults to coach;
// when withAudio is set the reply is also synthesized to speech.
func (s *ChatService) SendMessage(ctx context.Context, text, mode string, withAudio bool) (*ChatResult, error) {
	input, err := s.cleanInput(text)
	if err != nil {
		return nil, err
	}
	persona, ok := modePrompts[strings.ToLower(strings.TrimSpace(mode))]
	if mode != "" && !ok {
		return nil, fmt.Errorf("unknown mode %q: %w", mode, errs.ErrValidation)
	}
	if persona == "" {
		persona = modePrompts["coach"]
	}
	if s.chatter == nil {
		return nil, errs.ErrConfig
	}

	reply, err := s.chatter.Chat(ctx, persona+"\n\nARGUMENT:\n"+input)
	if err != nil {
		return nil, err
	}
	result := &ChatResult{Text: reply.Text, References: reply.References}
	if withAudio {
		audio, mime, err := s.Synthesize(ctx, reply.Text, "", "")
		if err != nil {
			// The text reply is still useful without audio.
			logutil.GetLogger(ctx).Warn("reply synthesis failed", zap.Error(err))
		} else {
			result.Audio = audio
			result.Mime = mime
		}
	}
	return result, nil
}

func (s *ChatService) Transcribe(ctx context.Context, filename string, r io.Reader) (string, error) {
	if filename == "" {
		filename = "audio.webm"
	}
	return s.speech.Transcribe(ctx, s.opts.TranscribeModel, filename, r)
}

// Synthesize converts text to speech, serving repeats from the cache.
func (s *ChatService) Synthesize(ctx context.Context, text, voice, format string) ([]byte, string, error) {
	input, err := s.cleanInput(text)
	if err != nil {
		return nil, "", err
	}
	if voice == "" {
		voice = s.opts.TTSVoice
	}
	if format == "" {
		format = "mp3"
	}
	key := ttsCacheKey(s.opts.TTSModel, voice, format, input)
	if audio, ok := s.ttsCache.Get(key); ok {
		return audio, "audio/" + format, nil
	}
	audio, err := s.speech.Speech(ctx, s.opts.TTSModel, voice, format, input)
	if err != nil {
		return nil, "", err
	}
	s.ttsCache.Add(key, audio)
	return audio, "audio/" + format, nil
}

func (s *ChatService) cleanInput(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errs.ErrValidation
	}
	if s.opts.MaxInputChars > 0 && len(trimmed) > s.opts.MaxInputChars {
		return "", errs.ErrValidation
	}
	return trimmed, nil
}

func ttsCacheKey(model, voice, format, text string) string {
	hash := sha256.Sum256([]byte(model + "|" + voice + "|" + format + "|" + text))
	return hex.EncodeToString(hash[:])
}
