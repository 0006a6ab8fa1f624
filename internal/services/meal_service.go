package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/models"
	"github.com/ketomate/backend/internal/storage"
	"gorm.io/gorm"
)

var ErrInvalidImage = errors.New("invalid image data")

const mealAnalysisPrompt = `You are a keto nutrition expert. Analyze the meal in this photo.

Count the distinct vegetable and protein components, estimate the macros for the whole plate, and describe the meal in one or two sentences.

A keto serving should stay at or below 20g of net carbs. If the estimated carbs exceed that, include a short carb_warning explaining which ingredient is the problem; otherwise set carb_warning to null.

Return ONLY a valid JSON object in this exact structure:
{
  "vegetables": 2,
  "proteins": 1,
  "estimated_macros": {
    "carbs": 8.5,
    "protein": 32.0,
    "fat": 24.0,
    "calories": 390
  },
  "carb_warning": null,
  "description": "Grilled chicken breast with roasted broccoli and cauliflower."
}`

type MealService struct {
	db     *gorm.DB
	gemini *GeminiClient
	bucket *storage.Bucket
}

func NewMealService(db *gorm.DB, gemini *GeminiClient, bucket *storage.Bucket) *MealService {
	return &MealService{db: db, gemini: gemini, bucket: bucket}
}

// AnalyzeMealImage runs the photo through the vision model and returns
// the estimated keto breakdown.
func (s *MealService) AnalyzeMealImage(ctx context.Context, req *dto.AnalyzeMealRequest) (*dto.MealAnalysisResponse, error) {
	mimeType, imageData, err := decodeImagePayload(req.ImageData)
	if err != nil {
		return nil, err
	}

	raw, err := s.gemini.PromptWithImage(ctx, mealAnalysisPrompt, mimeType, imageData)
	if err != nil {
		return nil, fmt.Errorf("meal analysis failed: %w", err)
	}

	var analysis dto.MealAnalysisResponse
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &analysis); err != nil {
		slog.Error("unparseable meal analysis", "error", err)
		return nil, fmt.Errorf("meal analysis returned an unexpected format: %w", err)
	}

	if analysis.CarbWarning == nil && analysis.EstimatedMacros.Carbs > models.KetoMaxCarbsPerServing {
		warning := fmt.Sprintf("Estimated %.0fg carbs exceeds the %dg keto limit.",
			analysis.EstimatedMacros.Carbs, models.KetoMaxCarbsPerServing)
		analysis.CarbWarning = &warning
	}

	return &analysis, nil
}

// LogMeal stores a meal as a journal entry. The photo, when present, is
// uploaded first so the entry carries its public URL.
func (s *MealService) LogMeal(ctx context.Context, userID uuid.UUID, req *dto.LogMealRequest) (*models.Log, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("meal name is required")
	}

	var imageURL *string
	if req.ImageData != "" {
		url, err := s.uploadMealPhoto(ctx, userID, req.ImageData)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	metrics, err := marshalMetrics(mealMetrics(req))
	if err != nil {
		return nil, err
	}

	entry := models.Log{
		ID:       uuid.New(),
		UserID:   userID,
		Type:     models.LogTypeMealNote,
		Content:  buildMealContent(name, req.Description, req.CarbWarning),
		ImageURL: imageURL,
		Metrics:  metrics,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to log meal: %w", err)
	}
	return &entry, nil
}

func (s *MealService) uploadMealPhoto(ctx context.Context, userID uuid.UUID, imageData string) (string, error) {
	mimeType, payload, err := decodeImagePayload(imageData)
	if err != nil {
		return "", err
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	ext := "jpg"
	if mimeType == "image/png" {
		ext = "png"
	}
	key := fmt.Sprintf("meals/%s/%s.%s", userID.String(), uuid.New().String(), ext)

	url, err := s.bucket.Upload(ctx, key, mimeType, bytes.NewReader(decoded))
	if err != nil {
		return "", fmt.Errorf("failed to upload meal photo: %w", err)
	}
	return url, nil
}

// buildMealContent flattens the meal into the journal's content column:
// name, then description, then the carb warning prefixed with ⚠️.
func buildMealContent(name, description string, carbWarning *string) string {
	parts := []string{name}
	if desc := strings.TrimSpace(description); desc != "" {
		parts = append(parts, desc)
	}
	if carbWarning != nil && strings.TrimSpace(*carbWarning) != "" {
		parts = append(parts, "⚠️ "+strings.TrimSpace(*carbWarning))
	}
	return strings.Join(parts, "\n")
}

func mealMetrics(req *dto.LogMealRequest) map[string]interface{} {
	metrics := map[string]interface{}{
		"macros": req.Macros,
	}
	if req.Vegetables != nil {
		metrics["vegetables"] = *req.Vegetables
	}
	if req.Proteins != nil {
		metrics["proteins"] = *req.Proteins
	}
	return metrics
}

// decodeImagePayload accepts either a bare base64 string or a data URL
// and returns the mime type plus the base64 payload.
func decodeImagePayload(imageData string) (string, string, error) {
	imageData = strings.TrimSpace(imageData)
	if imageData == "" {
		return "", "", fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	if !strings.HasPrefix(imageData, "data:") {
		return "image/jpeg", imageData, nil
	}

	rest := strings.TrimPrefix(imageData, "data:")
	semi := strings.Index(rest, ";base64,")
	if semi == -1 {
		return "", "", fmt.Errorf("%w: expected a base64 data URL", ErrInvalidImage)
	}

	mimeType := rest[:semi]
	payload := rest[semi+len(";base64,"):]
	if mimeType != "image/jpeg" && mimeType != "image/png" && mimeType != "image/webp" {
		return "", "", fmt.Errorf("%w: unsupported type %s", ErrInvalidImage, mimeType)
	}
	return mimeType, payload, nil
}
