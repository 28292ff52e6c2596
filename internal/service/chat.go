package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gea-verde/gea-api/internal/config"
	"github.com/gea-verde/gea-api/internal/domain"
)

var ErrChatUnavailable = errors.New("assistant is unavailable")

const ecoGuiaSystemPrompt = `Eres Eco-Guía, el asistente virtual de GEA. Ayudás a los usuarios a ` +
	`vivir de forma más sostenible: respondés preguntas sobre reciclaje, compostaje, consumo ` +
	`responsable, comercios sustentables y el programa de monedas verdes. Respondé siempre en ` +
	`español, de forma breve y amigable. Si la pregunta no tiene relación con la sostenibilidad ` +
	`ni con la aplicación, redirigí amablemente la conversación.`

type ChatComercioRepository interface {
	FindAll(ctx context.Context) ([]domain.Comercio, error)
}

type ChatRecordRepository interface {
	FindByUserID(ctx context.Context, userID uint) ([]domain.Record, error)
}

// ChatService fronts the Gemini generateContent API for the Eco-Guía
// assistant, enriching each prompt with app data relevant to the
// question before sending it upstream.
type ChatService struct {
	conf         *config.GeminiConfig
	client       *http.Client
	comercioRepo ChatComercioRepository
	recordRepo   ChatRecordRepository
}

func NewChatService(conf *config.GeminiConfig, comercioRepo ChatComercioRepository, recordRepo ChatRecordRepository) *ChatService {
	return &ChatService{
		conf:         conf,
		client:       &http.Client{Timeout: 30 * time.Second},
		comercioRepo: comercioRepo,
		recordRepo:   recordRepo,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Ask sends the conversation plus retrieved context to Gemini and
// returns the assistant's reply.
func (s *ChatService) Ask(ctx context.Context, userID uint, history []domain.ChatMessage, question string) (string, error) {
	appContext := s.buildContext(ctx, userID, question)

	systemText := ecoGuiaSystemPrompt
	if appContext != "" {
		systemText += "\n\nContexto de la aplicación:\n" + appContext
	}

	contents := make([]geminiContent, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Sender != "user" {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Text}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: question}},
	})

	body, err := json.Marshal(geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemText}}},
		Contents:          contents,
	})
	if err != nil {
		return "", fmt.Errorf("json.Marshal -> %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.conf.BaseURL, s.conf.Model, s.conf.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("s.client.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		zap.L().Error("gemini returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)

		return "", ErrChatUnavailable
	}

	var parsed geminiResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("json.Decode -> %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrChatUnavailable
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// buildContext does keyword-based retrieval over app data. Context
// lookups are best effort, a failed query just means a leaner prompt.
func (s *ChatService) buildContext(ctx context.Context, userID uint, question string) string {
	q := strings.ToLower(question)
	var sections []string

	if containsAny(q, "comercio", "tienda", "negocio", "local", "donde", "dónde", "comprar") {
		comercios, err := s.comercioRepo.FindAll(ctx)
		if err != nil {
			zap.L().Warn("failed to load comercios for chat context", zap.Error(err))
		} else if len(comercios) > 0 {
			var b strings.Builder
			b.WriteString("Comercios registrados:")
			for _, c := range comercios {
				sustainable := "no sustentable"
				if c.IsSustainable {
					sustainable = "sustentable"
				}
				fmt.Fprintf(&b, "\n- %s (%s, %s): %s", c.Name, c.Rubro, sustainable, c.Address)
			}
			sections = append(sections, b.String())
		}
	}

	if containsAny(q, "compra", "gasto", "registro", "historial", "moneda", "coin", "nivel") {
		records, err := s.recordRepo.FindByUserID(ctx, userID)
		if err != nil {
			zap.L().Warn("failed to load records for chat context", zap.Error(err))
		} else if len(records) > 0 {
			if len(records) > 10 {
				records = records[:10]
			}
			var b strings.Builder
			b.WriteString("Últimas compras del usuario:")
			for _, r := range records {
				fmt.Fprintf(&b, "\n- %s: $%.2f (%s, %s, %d monedas)", r.Fecha, r.Monto, r.Rubro, r.Status, r.GreenCoins)
			}
			sections = append(sections, b.String())
		}
	}

	return strings.Join(sections, "\n\n")
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}

	return false
}
